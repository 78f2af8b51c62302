// Package pipeline implements the return-status notification operation:
// event validation, template-data assembly and multi-channel dispatch.
package pipeline

import (
	"context"

	"returnnotifier/internal/directory"
	"returnnotifier/internal/events"
)

// PermitGoodsReturn is the staff permission whose subscribers receive
// return-status emails.
const PermitGoodsReturn = "tsGoodsReturn"

// Template keys resolved through the Localizer.
const (
	TemplateNewPositionAdded         = "NewPositionAdded"
	TemplatePositionStatusHasChanged = "PositionStatusHasChanged"
	TemplateEmployeeEmailSubject     = "complaintEmployeeEmailSubject"
	TemplateEmployeeEmailBody        = "complaintEmployeeEmailBody"
	TemplateClientEmailSubject       = "complaintClientEmailSubject"
	TemplateClientEmailBody          = "complaintClientEmailBody"
)

// Settings provides per-reseller notification configuration.
type Settings interface {
	// EmailFrom returns the reseller's send-from address, or "" when none
	// is configured.
	EmailFrom(ctx context.Context, resellerID int64) (string, error)

	// EmailsByPermit returns the staff addresses subscribed to a permission
	// for the reseller. The list may be empty.
	EmailsByPermit(ctx context.Context, resellerID int64, permit string) ([]string, error)
}

// Localizer renders a named template with a variable bag for a reseller.
type Localizer interface {
	Localize(ctx context.Context, key string, vars map[string]string, resellerID int64) (string, error)
}

// EmailMessage is a single outbound email.
type EmailMessage struct {
	From    string
	To      string
	Subject string
	Body    string
}

// EmailSender delivers a single email. Delivery is fire-and-forget from the
// pipeline's perspective: errors are logged by the dispatcher, never
// propagated. statusCode is 0 when the notification carries no new status.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage, resellerID, clientID int64, event string, statusCode int) error
}

// SMSSender invokes the SMS subsystem, which performs its own templating
// and delivery. It reports whether the message was sent and, when it was
// not, an error describing why.
type SMSSender interface {
	Send(ctx context.Context, resellerID, clientID int64, event string, statusCode int, vars map[string]string) (bool, error)
}

// SMSOutcome records the client SMS channel result.
type SMSOutcome struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

// Outcome is the per-channel dispatch report returned to the caller.
// Channel failures never abort one another; each is recorded here.
type Outcome struct {
	StaffEmailSent  bool       `json:"staffEmailSent"`
	ClientEmailSent bool       `json:"clientEmailSent"`
	ClientSMS       SMSOutcome `json:"clientSms"`
}

// Operation runs the validation → template → dispatch pipeline for one
// return-status event. All collaborators are injected so tests can
// substitute fakes.
type Operation struct {
	directory directory.Directory
	settings  Settings
	localizer Localizer
	email     EmailSender
	sms       SMSSender
}

// NewOperation wires a pipeline operation with its collaborators.
func NewOperation(dir directory.Directory, settings Settings, localizer Localizer, email EmailSender, sms SMSSender) *Operation {
	return &Operation{
		directory: dir,
		settings:  settings,
		localizer: localizer,
		email:     email,
		sms:       sms,
	}
}

// Execute runs the pipeline for one event. Validation and template failures
// abort before any send; dispatch failures degrade into the outcome record.
// The caller receives either a complete outcome or a single typed error,
// never both.
func (o *Operation) Execute(ctx context.Context, ev *events.Event) (*Outcome, error) {
	resolved, err := o.validate(ctx, ev)
	if err != nil {
		return nil, err
	}

	data, err := o.buildTemplateData(ctx, resolved, ev)
	if err != nil {
		return nil, err
	}

	return o.dispatch(ctx, resolved.seller, resolved.client, data, ev), nil
}
