// Package config provides configuration parsing and validation for the
// return notifier service.
package config

import (
	"fmt"
)

// Config holds all configuration parameters for the return notifier.
type Config struct {
	KafkaBrokers    string
	ReturnsTopic    string
	ConsumerGroupID string
	PostgresDSN     string
	RedisAddr       string
	SMSGatewayURL   string
	WorkerCount     int
}

// Validate checks that all required configuration fields are set and have
// valid values. RedisAddr and SMSGatewayURL are optional: without Redis the
// notifier runs with no-op metrics, without a gateway the SMS channel
// reports its own failure per event.
func (c *Config) Validate() error {
	if c.KafkaBrokers == "" {
		return fmt.Errorf("kafka-brokers cannot be empty")
	}
	if c.ReturnsTopic == "" {
		return fmt.Errorf("returns-topic cannot be empty")
	}
	if c.ConsumerGroupID == "" {
		return fmt.Errorf("consumer-group-id cannot be empty")
	}
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres-dsn cannot be empty")
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("worker-count must be positive")
	}
	return nil
}
