// Package metrics provides metrics recording for the return notifier.
// It uses the null object pattern to avoid nil checks throughout the
// codebase.
package metrics

import "time"

// Recorder defines the interface for recording notifier metrics.
type Recorder interface {
	// RecordReceived increments the count of received events.
	RecordReceived()

	// RecordProcessed records a successfully processed event with its latency.
	RecordProcessed(latency time.Duration)

	// RecordRejected increments the count of events rejected by validation.
	RecordRejected()

	// RecordError increments the processing error counter.
	RecordError()

	// RecordStaffEmail increments the count of staff email fan-outs.
	RecordStaffEmail()

	// RecordClientEmail increments the count of client email attempts.
	RecordClientEmail()

	// RecordClientSMS increments the count of client SMS sends.
	RecordClientSMS()
}

// NoOp is a no-op implementation of Recorder that discards all metrics.
// Use this when metrics collection is not configured.
type NoOp struct{}

// NewNoOp creates a new no-op metrics recorder.
func NewNoOp() *NoOp {
	return &NoOp{}
}

func (n *NoOp) RecordReceived()                 {}
func (n *NoOp) RecordProcessed(_ time.Duration) {}
func (n *NoOp) RecordRejected()                 {}
func (n *NoOp) RecordError()                    {}
func (n *NoOp) RecordStaffEmail()               {}
func (n *NoOp) RecordClientEmail()              {}
func (n *NoOp) RecordClientSMS()                {}

// Ensure NoOp implements Recorder
var _ Recorder = (*NoOp)(nil)
