package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// MetricsKey is the Redis key the notifier reports under.
	MetricsKey = "metrics:return-notifier"
	// MetricsTTL is how long metrics stay in Redis if not refreshed.
	MetricsTTL = 2 * time.Minute
	// DefaultReportInterval is the default interval for writing metrics to Redis.
	DefaultReportInterval = 30 * time.Second
)

// ServiceMetrics is the snapshot written to Redis.
type ServiceMetrics struct {
	ServiceName string    `json:"service_name"`
	StartedAt   time.Time `json:"started_at"`
	LastUpdated time.Time `json:"last_updated"`
	Status      string    `json:"status"`

	// Counters, monotonically increasing since start.
	EventsReceived   uint64 `json:"events_received"`
	EventsProcessed  uint64 `json:"events_processed"`
	EventsRejected   uint64 `json:"events_rejected"`
	ProcessingErrors uint64 `json:"processing_errors"`

	EventsPerSecond float64 `json:"events_per_second"`

	// All-time average in nanoseconds.
	AvgProcessingLatencyNs float64 `json:"avg_processing_latency_ns"`

	ChannelCounters map[string]uint64 `json:"channel_counters,omitempty"`
}

// Collector accumulates counters and periodically reports them to Redis.
type Collector struct {
	redis          *redis.Client
	startedAt      time.Time
	reportInterval time.Duration

	eventsReceived   atomic.Uint64
	eventsProcessed  atomic.Uint64
	eventsRejected   atomic.Uint64
	processingErrors atomic.Uint64

	lastReportTime     time.Time
	lastProcessedCount uint64

	totalLatencyNs atomic.Uint64
	latencyCount   atomic.Uint64

	channelMu       sync.RWMutex
	channelCounters map[string]*atomic.Uint64

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewCollector creates a new metrics collector.
func NewCollector(redisClient *redis.Client) *Collector {
	return &Collector{
		redis:           redisClient,
		startedAt:       time.Now().UTC(),
		reportInterval:  DefaultReportInterval,
		lastReportTime:  time.Now().UTC(),
		channelCounters: make(map[string]*atomic.Uint64),
		stopCh:          make(chan struct{}),
	}
}

// SetReportInterval sets the interval for writing metrics to Redis.
func (c *Collector) SetReportInterval(interval time.Duration) {
	c.reportInterval = interval
}

// Start begins the periodic metrics reporting to Redis.
func (c *Collector) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.reportInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				c.writeMetrics(context.Background())
				return
			case <-c.stopCh:
				c.writeMetrics(context.Background())
				return
			case <-ticker.C:
				c.writeMetrics(ctx)
			}
		}
	}()
}

// Stop stops the metrics reporting after a final write.
func (c *Collector) Stop() {
	close(c.stopCh)
	c.wg.Wait()
}

// RecordReceived increments the events received counter.
func (c *Collector) RecordReceived() {
	c.eventsReceived.Add(1)
}

// RecordProcessed increments the events processed counter with latency.
func (c *Collector) RecordProcessed(latency time.Duration) {
	c.eventsProcessed.Add(1)
	c.totalLatencyNs.Add(uint64(latency.Nanoseconds()))
	c.latencyCount.Add(1)
}

// RecordRejected increments the validation rejection counter.
func (c *Collector) RecordRejected() {
	c.eventsRejected.Add(1)
}

// RecordError increments the processing errors counter.
func (c *Collector) RecordError() {
	c.processingErrors.Add(1)
}

// IncrementChannel increments a per-channel counter by name.
func (c *Collector) IncrementChannel(name string) {
	c.channelMu.RLock()
	counter, exists := c.channelCounters[name]
	c.channelMu.RUnlock()

	if !exists {
		c.channelMu.Lock()
		// Double-check after acquiring write lock
		if counter, exists = c.channelCounters[name]; !exists {
			counter = &atomic.Uint64{}
			c.channelCounters[name] = counter
		}
		c.channelMu.Unlock()
	}
	counter.Add(1)
}

// GetSnapshot returns current metrics without writing to Redis.
func (c *Collector) GetSnapshot() *ServiceMetrics {
	now := time.Now().UTC()
	processed := c.eventsProcessed.Load()

	elapsed := now.Sub(c.lastReportTime).Seconds()
	var rate float64
	if elapsed > 0 {
		rate = float64(processed-c.lastProcessedCount) / elapsed
	}

	var avgLatencyNs float64
	latencyCount := c.latencyCount.Load()
	if latencyCount > 0 {
		avgLatencyNs = float64(c.totalLatencyNs.Load()) / float64(latencyCount)
	}

	c.channelMu.RLock()
	channelCounters := make(map[string]uint64, len(c.channelCounters))
	for name, counter := range c.channelCounters {
		channelCounters[name] = counter.Load()
	}
	c.channelMu.RUnlock()

	return &ServiceMetrics{
		ServiceName:            "return-notifier",
		StartedAt:              c.startedAt,
		LastUpdated:            now,
		Status:                 "healthy",
		EventsReceived:         c.eventsReceived.Load(),
		EventsProcessed:        processed,
		EventsRejected:         c.eventsRejected.Load(),
		ProcessingErrors:       c.processingErrors.Load(),
		EventsPerSecond:        rate,
		AvgProcessingLatencyNs: avgLatencyNs,
		ChannelCounters:        channelCounters,
	}
}

// writeMetrics writes current metrics to Redis.
func (c *Collector) writeMetrics(ctx context.Context) {
	if c.redis == nil {
		return
	}

	snapshot := c.GetSnapshot()

	c.lastReportTime = snapshot.LastUpdated
	c.lastProcessedCount = snapshot.EventsProcessed

	// Latency counters are never reset, the average is all-time.

	data, err := json.Marshal(snapshot)
	if err != nil {
		slog.Error("Failed to marshal metrics", "error", err)
		return
	}

	if err := c.redis.Set(ctx, MetricsKey, data, MetricsTTL).Err(); err != nil {
		slog.Error("Failed to write metrics to Redis", "error", err)
		return
	}

	slog.Debug("Metrics written to Redis", "key", MetricsKey)
}

// ConnectRedis creates and validates a Redis connection.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return client, nil
}
