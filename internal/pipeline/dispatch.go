package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"returnnotifier/internal/directory"
	"returnnotifier/internal/events"
)

// dispatch delivers the built notification across the staff-email, client-
// email and client-SMS channels. No channel's failure aborts another:
// transport errors are logged and the outcome records what was attempted.
//
// StaffEmailSent reflects whether the staff recipient list was non-empty,
// not per-recipient delivery confirmation.
func (o *Operation) dispatch(ctx context.Context, seller *directory.Seller, client *directory.Contractor, data *TemplateData, ev *events.Event) *Outcome {
	out := &Outcome{}
	vars := data.Vars()

	emailFrom := o.resolveEmailFrom(ctx, seller.ID)

	if emailFrom != "" {
		out.StaffEmailSent = o.sendStaffEmails(ctx, seller, client, vars, emailFrom)
	}

	// Client-facing channels fire only on an actual status change.
	if ev.NotificationType == events.TypeChange && ev.HasStatusTo() {
		statusTo := ev.StatusTo()

		if emailFrom != "" && client.Email != "" {
			o.sendClientEmail(ctx, seller, client, vars, emailFrom, statusTo)
			out.ClientEmailSent = true
		}

		if client.Mobile != "" {
			sent, err := o.sms.Send(ctx, seller.ID, client.ID, events.EventChangeReturnStatus, statusTo, vars)
			out.ClientSMS.Sent = sent
			if err != nil {
				out.ClientSMS.Message = err.Error()
				slog.Warn("Client SMS not sent",
					"reseller_id", seller.ID,
					"client_id", client.ID,
					"error", err,
				)
			}
		}
	}

	return out
}

// resolveEmailFrom looks up the reseller's send-from address. A lookup
// failure degrades to "absent": both email channels are skipped.
func (o *Operation) resolveEmailFrom(ctx context.Context, resellerID int64) string {
	emailFrom, err := o.settings.EmailFrom(ctx, resellerID)
	if err != nil {
		slog.Warn("Failed to resolve send-from address, skipping email channels",
			"reseller_id", resellerID,
			"error", err,
		)
		return ""
	}
	return emailFrom
}

// sendStaffEmails fans the rendered staff email out to every subscribed
// address concurrently. Individual transport results are logged but not
// inspected; the return value reflects list non-emptiness only.
func (o *Operation) sendStaffEmails(ctx context.Context, seller *directory.Seller, client *directory.Contractor, vars map[string]string, emailFrom string) bool {
	emails, err := o.settings.EmailsByPermit(ctx, seller.ID, PermitGoodsReturn)
	if err != nil {
		slog.Warn("Failed to resolve staff recipients",
			"reseller_id", seller.ID,
			"permit", PermitGoodsReturn,
			"error", err,
		)
		return false
	}
	if len(emails) == 0 {
		return false
	}

	subject := o.render(ctx, TemplateEmployeeEmailSubject, vars, seller.ID)
	body := o.render(ctx, TemplateEmployeeEmailBody, vars, seller.ID)

	var wg sync.WaitGroup
	for _, email := range emails {
		wg.Add(1)
		go func(to string) {
			defer wg.Done()
			msg := EmailMessage{From: emailFrom, To: to, Subject: subject, Body: body}
			if err := o.email.Send(ctx, msg, seller.ID, client.ID, events.EventChangeReturnStatus, 0); err != nil {
				slog.Warn("Staff email send failed",
					"reseller_id", seller.ID,
					"to", to,
					"error", err,
				)
			}
		}(email)
	}
	wg.Wait()

	return true
}

func (o *Operation) sendClientEmail(ctx context.Context, seller *directory.Seller, client *directory.Contractor, vars map[string]string, emailFrom string, statusTo int) {
	msg := EmailMessage{
		From:    emailFrom,
		To:      client.Email,
		Subject: o.render(ctx, TemplateClientEmailSubject, vars, seller.ID),
		Body:    o.render(ctx, TemplateClientEmailBody, vars, seller.ID),
	}
	if err := o.email.Send(ctx, msg, seller.ID, client.ID, events.EventChangeReturnStatus, statusTo); err != nil {
		slog.Warn("Client email send failed",
			"reseller_id", seller.ID,
			"client_id", client.ID,
			"error", err,
		)
	}
}

// render localizes one template key; a rendering failure degrades to ""
// so a broken catalog entry cannot abort the dispatch.
func (o *Operation) render(ctx context.Context, key string, vars map[string]string, resellerID int64) string {
	text, err := o.localizer.Localize(ctx, key, vars, resellerID)
	if err != nil {
		slog.Warn("Failed to render template", "key", key, "reseller_id", resellerID, "error", err)
		return ""
	}
	return text
}
