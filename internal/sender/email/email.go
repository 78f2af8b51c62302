// Package email delivers notification emails through the provider
// registry. The active backend is chosen by the EMAIL_PROVIDER environment
// variable, with the remaining backends kept as fallbacks.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"returnnotifier/internal/pipeline"
	"returnnotifier/internal/sender/email/provider"
	"returnnotifier/internal/sender/retry"
)

// Sender sends pipeline emails through the configured provider registry,
// retrying transient transport failures with exponential backoff.
type Sender struct {
	registry *provider.Registry
	retryCfg retry.Config
}

// NewSender creates a sender with the SES, Resend and SMTP backends
// registered. EMAIL_PROVIDER selects the primary backend (default "smtp").
func NewSender() *Sender {
	registry := provider.NewRegistry()
	registry.Register(provider.NewSESProvider())
	registry.Register(provider.NewResendProvider())
	registry.Register(provider.NewSMTPProvider())

	primary := provider.GetEnvOrDefault("EMAIL_PROVIDER", "smtp")
	if err := registry.SetPrimary(primary); err != nil {
		slog.Warn("Unknown EMAIL_PROVIDER, using smtp", "name", primary)
		registry.SetPrimary("smtp")
	}
	registry.SetFallback("ses", "resend", "smtp")

	return NewSenderWithRegistry(registry)
}

// NewSenderWithRegistry creates a sender over a prepared registry.
func NewSenderWithRegistry(registry *provider.Registry) *Sender {
	return &Sender{
		registry: registry,
		retryCfg: retry.DefaultConfig(),
	}
}

// Send delivers one email. The To field may carry a comma-separated list
// of addresses.
func (s *Sender) Send(ctx context.Context, msg pipeline.EmailMessage, resellerID, clientID int64, event string, statusCode int) error {
	if msg.From == "" {
		return fmt.Errorf("send-from address is required")
	}
	if msg.To == "" {
		return fmt.Errorf("email recipient is required")
	}

	recipients := provider.ParseRecipients(msg.To)
	if len(recipients) == 0 {
		return fmt.Errorf("no valid email recipients provided")
	}
	for _, recipient := range recipients {
		if !strings.Contains(recipient, "@") {
			return fmt.Errorf("invalid email address format: %q (missing @ symbol)", recipient)
		}
	}

	req := &provider.EmailRequest{
		From:    msg.From,
		To:      recipients,
		Subject: msg.Subject,
		Body:    msg.Body,
	}

	err := retry.WithRetry(ctx, s.retryCfg, "send_email", func() error {
		return s.registry.Send(ctx, req)
	})
	if err != nil {
		slog.Error("Failed to send email",
			"error", err,
			"to", msg.To,
			"reseller_id", resellerID,
			"client_id", clientID,
			"event", event,
		)
		return err
	}

	slog.Info("Email notification sent",
		"to", msg.To,
		"subject", msg.Subject,
		"reseller_id", resellerID,
		"client_id", clientID,
		"event", event,
		"status_code", statusCode,
	)

	return nil
}
