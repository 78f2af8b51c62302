// Package sms invokes the SMS gateway over HTTP. The gateway performs its
// own message templating and delivery and reports whether the message was
// sent.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"returnnotifier/internal/sender/retry"
)

// Client sends SMS requests to the gateway via HTTP POST.
type Client struct {
	gatewayURL string
	httpClient *http.Client
	retryCfg   retry.Config
}

// NewClient creates a new SMS gateway client.
func NewClient(gatewayURL string) *Client {
	return &Client{
		gatewayURL: gatewayURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryCfg: retry.DefaultConfig(),
	}
}

type gatewayRequest struct {
	RequestID  string            `json:"request_id"`
	ResellerID int64             `json:"reseller_id"`
	ClientID   int64             `json:"client_id"`
	Event      string            `json:"event"`
	StatusCode int               `json:"status_code"`
	Vars       map[string]string `json:"vars"`
}

type gatewayResponse struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error"`
}

// isValidGatewayURL checks that the value is an HTTP or HTTPS URL.
func isValidGatewayURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}

// Send asks the gateway to deliver an SMS for the event. It returns whether
// the message was sent and, when it was not, an error describing why.
func (c *Client) Send(ctx context.Context, resellerID, clientID int64, event string, statusCode int, vars map[string]string) (bool, error) {
	if c.gatewayURL == "" {
		return false, errors.New("sms gateway URL is not configured")
	}
	if !isValidGatewayURL(c.gatewayURL) {
		return false, fmt.Errorf("invalid sms gateway URL: %q (must be a valid HTTP/HTTPS URL)", c.gatewayURL)
	}

	payload := gatewayRequest{
		RequestID:  uuid.NewString(),
		ResellerID: resellerID,
		ClientID:   clientID,
		Event:      event,
		StatusCode: statusCode,
		Vars:       vars,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("failed to marshal sms request: %w", err)
	}

	var result gatewayResponse
	err = retry.WithRetry(ctx, c.retryCfg, "send_sms", func() error {
		return c.post(ctx, jsonData, &result)
	})
	if err != nil {
		slog.Error("Failed to reach sms gateway",
			"error", err,
			"request_id", payload.RequestID,
			"reseller_id", resellerID,
			"client_id", clientID,
			"event", event,
		)
		return false, err
	}

	if !result.Sent {
		message := result.Error
		if message == "" {
			message = "sms gateway declined message"
		}
		slog.Warn("SMS gateway declined message",
			"reason", message,
			"request_id", payload.RequestID,
			"reseller_id", resellerID,
			"client_id", clientID,
		)
		return false, errors.New(message)
	}

	slog.Info("SMS notification sent",
		"request_id", payload.RequestID,
		"reseller_id", resellerID,
		"client_id", clientID,
		"event", event,
		"status_code", statusCode,
	)

	return true, nil
}

func (c *Client) post(ctx context.Context, body []byte, result *gatewayResponse) error {
	req, err := http.NewRequestWithContext(ctx, "POST", c.gatewayURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send sms request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode sms gateway response: %w", err)
	}

	return nil
}
