package metrics

import (
	"context"
	"testing"
	"time"
)

func TestNoOp_AllMethodsWork(t *testing.T) {
	noop := NewNoOp()

	// None of these should panic
	noop.RecordReceived()
	noop.RecordProcessed(time.Second)
	noop.RecordRejected()
	noop.RecordError()
	noop.RecordStaffEmail()
	noop.RecordClientEmail()
	noop.RecordClientSMS()
}

func TestCollector_Counters(t *testing.T) {
	collector := NewCollector(nil)

	collector.RecordReceived()
	collector.RecordReceived()
	collector.RecordProcessed(10 * time.Millisecond)
	collector.RecordRejected()
	collector.RecordError()

	snapshot := collector.GetSnapshot()
	if snapshot.EventsReceived != 2 {
		t.Errorf("EventsReceived = %d, want 2", snapshot.EventsReceived)
	}
	if snapshot.EventsProcessed != 1 {
		t.Errorf("EventsProcessed = %d, want 1", snapshot.EventsProcessed)
	}
	if snapshot.EventsRejected != 1 {
		t.Errorf("EventsRejected = %d, want 1", snapshot.EventsRejected)
	}
	if snapshot.ProcessingErrors != 1 {
		t.Errorf("ProcessingErrors = %d, want 1", snapshot.ProcessingErrors)
	}
	if snapshot.AvgProcessingLatencyNs <= 0 {
		t.Error("AvgProcessingLatencyNs should be positive")
	}
	if snapshot.ServiceName != "return-notifier" {
		t.Errorf("ServiceName = %v, want return-notifier", snapshot.ServiceName)
	}
}

func TestCollector_ChannelCounters(t *testing.T) {
	collector := NewCollector(nil)
	adapter := NewCollectorAdapter(collector)

	adapter.RecordStaffEmail()
	adapter.RecordStaffEmail()
	adapter.RecordClientEmail()
	adapter.RecordClientSMS()

	snapshot := collector.GetSnapshot()
	if got := snapshot.ChannelCounters["staff_emails_sent"]; got != 2 {
		t.Errorf("staff_emails_sent = %d, want 2", got)
	}
	if got := snapshot.ChannelCounters["client_emails_sent"]; got != 1 {
		t.Errorf("client_emails_sent = %d, want 1", got)
	}
	if got := snapshot.ChannelCounters["client_sms_sent"]; got != 1 {
		t.Errorf("client_sms_sent = %d, want 1", got)
	}
}

func TestCollector_StartStopWithoutRedis(t *testing.T) {
	collector := NewCollector(nil)
	collector.SetReportInterval(time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector.Start(ctx)
	time.Sleep(5 * time.Millisecond)
	collector.Stop()
}
