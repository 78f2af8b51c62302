package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"returnnotifier/internal/consumer"
	"returnnotifier/internal/events"
	"returnnotifier/internal/metrics"
	"returnnotifier/internal/pipeline"
)

// work represents a unit of work for the worker pool.
type work struct {
	event *events.Event
	msg   *kafka.Message
}

// processorDeps holds all dependencies needed for event processing.
type processorDeps struct {
	consumer  *consumer.Consumer
	operation *pipeline.Operation
	metrics   metrics.Recorder
}

// processEvents reads return status events from Kafka and processes them
// concurrently.
func processEvents(ctx context.Context, workerCount int, kafkaConsumer *consumer.Consumer, operation *pipeline.Operation, m metrics.Recorder) error {
	slog.Info("Starting event processing loop", "workers", workerCount)

	deps := &processorDeps{
		consumer:  kafkaConsumer,
		operation: operation,
		metrics:   m,
	}

	jobs := make(chan work, workerCount*2)
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go runWorker(ctx, deps, jobs, &wg)
	}

	dispatchMessages(ctx, deps, jobs)

	close(jobs)
	wg.Wait()
	slog.Info("Event processing loop stopped")
	return nil
}

// runWorker processes jobs from the channel until it's closed.
func runWorker(ctx context.Context, deps *processorDeps, jobs <-chan work, wg *sync.WaitGroup) {
	defer wg.Done()
	for job := range jobs {
		processOne(ctx, deps, job.event, job.msg)
	}
}

// dispatchMessages reads messages from Kafka and dispatches them to workers.
// Undecodable messages are committed immediately so they are not redelivered
// forever.
func dispatchMessages(ctx context.Context, deps *processorDeps, jobs chan<- work) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			event, msg, err := deps.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Error("Failed to read return status event", "error", err)
				deps.metrics.RecordError()
				if msg != nil {
					commitOffset(ctx, deps.consumer, msg)
				}
				continue
			}
			deps.metrics.RecordReceived()
			jobs <- work{event: event, msg: msg}
		}
	}
}

// processOne runs the pipeline for a single event and commits the offset.
// Both rejection and dispatch are terminal for a message: retrying a
// validation or template failure cannot change its outcome, so the offset
// is committed either way.
func processOne(ctx context.Context, deps *processorDeps, event *events.Event, msg *kafka.Message) {
	startTime := time.Now()

	outcome, err := deps.operation.Execute(ctx, event)
	if err != nil {
		handleFailure(deps, event, err)
		commitOffset(ctx, deps.consumer, msg)
		return
	}

	deps.metrics.RecordProcessed(time.Since(startTime))
	if outcome.StaffEmailSent {
		deps.metrics.RecordStaffEmail()
	}
	if outcome.ClientEmailSent {
		deps.metrics.RecordClientEmail()
	}
	if outcome.ClientSMS.Sent {
		deps.metrics.RecordClientSMS()
	}

	slog.Info("Processed return status event",
		"reseller_id", event.ResellerID,
		"client_id", event.ClientID,
		"complaint_id", event.ComplaintID,
		"staff_email_sent", outcome.StaffEmailSent,
		"client_email_sent", outcome.ClientEmailSent,
		"client_sms_sent", outcome.ClientSMS.Sent,
	)

	commitOffset(ctx, deps.consumer, msg)
}

// handleFailure records a pipeline failure. Caller errors (bad input,
// unknown references) are rejections; everything else counts as a
// processing error.
func handleFailure(deps *processorDeps, event *events.Event, err error) {
	if pipeline.IsCallerError(err) {
		deps.metrics.RecordRejected()
		slog.Warn("Rejected return status event",
			"reseller_id", event.ResellerID,
			"client_id", event.ClientID,
			"complaint_id", event.ComplaintID,
			"error", err,
		)
		return
	}

	deps.metrics.RecordError()
	slog.Error("Failed to process return status event",
		"reseller_id", event.ResellerID,
		"client_id", event.ClientID,
		"complaint_id", event.ComplaintID,
		"error", err,
	)
}

// commitOffset commits the Kafka offset for the given message.
func commitOffset(ctx context.Context, c *consumer.Consumer, msg *kafka.Message) {
	if err := c.CommitMessage(ctx, msg); err != nil {
		slog.Error("Failed to commit offset", "error", err)
	}
}
