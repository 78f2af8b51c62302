package metrics

import "time"

// CollectorAdapter adapts Collector to the Recorder interface.
type CollectorAdapter struct {
	collector *Collector
}

// NewCollectorAdapter wraps a Collector to implement Recorder.
func NewCollectorAdapter(collector *Collector) *CollectorAdapter {
	return &CollectorAdapter{collector: collector}
}

func (a *CollectorAdapter) RecordReceived() {
	a.collector.RecordReceived()
}

func (a *CollectorAdapter) RecordProcessed(latency time.Duration) {
	a.collector.RecordProcessed(latency)
}

func (a *CollectorAdapter) RecordRejected() {
	a.collector.RecordRejected()
}

func (a *CollectorAdapter) RecordError() {
	a.collector.RecordError()
}

func (a *CollectorAdapter) RecordStaffEmail() {
	a.collector.IncrementChannel("staff_emails_sent")
}

func (a *CollectorAdapter) RecordClientEmail() {
	a.collector.IncrementChannel("client_emails_sent")
}

func (a *CollectorAdapter) RecordClientSMS() {
	a.collector.IncrementChannel("client_sms_sent")
}

// Ensure CollectorAdapter implements Recorder
var _ Recorder = (*CollectorAdapter)(nil)
