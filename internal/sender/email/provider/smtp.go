package provider

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// SMTPProvider implements email sending via a plain SMTP server. It is the
// default transport for local development (MailHog) and self-hosted relays.
type SMTPProvider struct {
	host     string
	port     string
	user     string
	password string
}

// NewSMTPProvider creates a new SMTP email provider configured from the
// SMTP_HOST, SMTP_PORT, SMTP_USER and SMTP_PASSWORD environment variables.
func NewSMTPProvider() *SMTPProvider {
	return NewSMTPProviderWithConfig(
		GetEnvOrDefault("SMTP_HOST", "localhost"),
		GetEnvOrDefault("SMTP_PORT", "1025"),
		GetEnvOrDefault("SMTP_USER", ""),
		GetEnvOrDefault("SMTP_PASSWORD", ""),
	)
}

// NewSMTPProviderWithConfig creates an SMTP provider with explicit settings.
func NewSMTPProviderWithConfig(host, port, user, password string) *SMTPProvider {
	return &SMTPProvider{
		host:     host,
		port:     port,
		user:     user,
		password: password,
	}
}

// Name returns the provider name.
func (p *SMTPProvider) Name() string {
	return "smtp"
}

// IsConfigured returns true if the SMTP server address is set.
func (p *SMTPProvider) IsConfigured() bool {
	return p.host != "" && p.port != ""
}

// Send sends an email via SMTP. Port 465 uses SSL/TLS from the start,
// port 587 upgrades with STARTTLS, everything else speaks plain SMTP.
func (p *SMTPProvider) Send(ctx context.Context, req *EmailRequest) error {
	if len(req.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	port, err := strconv.Atoi(p.port)
	if err != nil {
		return fmt.Errorf("invalid SMTP port: %s", p.port)
	}

	addr := net.JoinHostPort(p.host, p.port)
	msg := buildEmailMessage(req.From, req.To, req.Subject, req.Body)

	if port == 587 || port == 465 {
		err = p.sendWithTLS(addr, port, req.From, req.To, msg)
	} else {
		var auth smtp.Auth
		if p.user != "" && p.password != "" {
			auth = smtp.PlainAuth("", p.user, p.password, p.host)
		}
		err = smtp.SendMail(addr, auth, req.From, req.To, msg)
	}
	if err != nil {
		slog.Error("SMTP send failed",
			"error", err,
			"smtp_server", addr,
			"to", strings.Join(req.To, ", "),
		)
		return fmt.Errorf("SMTP send failed: %w", err)
	}

	slog.Info("Email sent via SMTP",
		"from", req.From,
		"to", strings.Join(req.To, ", "),
		"subject", req.Subject,
		"smtp_server", addr,
	)

	return nil
}

// sendWithTLS sends an email over a TLS or STARTTLS connection.
func (p *SMTPProvider) sendWithTLS(addr string, port int, fromAddr string, recipients []string, msg []byte) error {
	var client *smtp.Client

	if port == 465 {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: p.host})
		if err != nil {
			return fmt.Errorf("failed to connect to SMTP server with TLS: %w", err)
		}
		defer conn.Close()

		client, err = smtp.NewClient(conn, p.host)
		if err != nil {
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Close()
	} else {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err = smtp.NewClient(conn, p.host)
		if err != nil {
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Close()

		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: p.host}); err != nil {
				return fmt.Errorf("failed to start TLS: %w", err)
			}
		}
	}

	if p.user != "" && p.password != "" {
		auth := smtp.PlainAuth("", p.user, p.password, p.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(fromAddr); err != nil {
		return fmt.Errorf("failed to set sender %s: %w", fromAddr, err)
	}

	for _, recipient := range recipients {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", recipient, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := writer.Write(msg); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write email data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		slog.Warn("Error during SMTP QUIT", "error", err)
	}

	return nil
}
