// Package events defines the return-status event consumed from the returns topic
// and the coercion rules that turn its untrusted payload into typed fields.
package events

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Notification types carried in the event.
const (
	TypeNew    = 1
	TypeChange = 2
)

// EventChangeReturnStatus tags every outbound notification produced by this service.
const EventChangeReturnStatus = "changeReturnStatus"

// StatusDiff describes a return-status transition. Zero codes are treated
// as absent, matching the upstream producer which omits unset codes.
type StatusDiff struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Event is the parsed return-status event. Fields default to zero values
// when the raw payload omits them or carries garbage; validation of what
// is actually required happens in the pipeline, not here.
type Event struct {
	NotificationType  int
	ResellerID        int64
	ClientID          int64
	CreatorID         int64
	ExpertID          int64
	ComplaintID       int
	ComplaintNumber   string
	ConsumptionID     int
	ConsumptionNumber string
	AgreementNumber   string
	Date              string
	Differences       *StatusDiff
}

// Parse decodes a raw JSON event payload. No field is trusted: numbers may
// arrive as JSON numbers or numeric strings, and anything unparsable
// collapses to the field's zero value. Only malformed JSON is an error.
func Parse(data []byte) (*Event, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal return-status event: %w", err)
	}
	return FromMap(raw), nil
}

// FromMap coerces a loosely-typed payload into an Event.
func FromMap(raw map[string]any) *Event {
	ev := &Event{
		NotificationType:  toInt(raw["notificationType"]),
		ResellerID:        toInt64(raw["resellerId"]),
		ClientID:          toInt64(raw["clientId"]),
		CreatorID:         toInt64(raw["creatorId"]),
		ExpertID:          toInt64(raw["expertId"]),
		ComplaintID:       toInt(raw["complaintId"]),
		ComplaintNumber:   toString(raw["complaintNumber"]),
		ConsumptionID:     toInt(raw["consumptionId"]),
		ConsumptionNumber: toString(raw["consumptionNumber"]),
		AgreementNumber:   toString(raw["agreementNumber"]),
		Date:              toString(raw["date"]),
	}

	if diff, ok := raw["differences"].(map[string]any); ok {
		ev.Differences = &StatusDiff{
			From: toInt(diff["from"]),
			To:   toInt(diff["to"]),
		}
	}

	return ev
}

// HasStatusFrom reports whether the event carries a non-zero previous status code.
func (e *Event) HasStatusFrom() bool {
	return e.Differences != nil && e.Differences.From != 0
}

// HasStatusTo reports whether the event carries a non-zero new status code.
// Client-facing channels are gated on this.
func (e *Event) HasStatusTo() bool {
	return e.Differences != nil && e.Differences.To != 0
}

// StatusTo returns the new status code, or 0 when absent.
func (e *Event) StatusTo() int {
	if e.Differences == nil {
		return 0
	}
	return e.Differences.To
}

// toInt64 coerces a loosely-typed value to int64, defaulting to 0.
func toInt64(v any) int64 {
	switch x := v.(type) {
	case float64:
		return int64(x)
	case int:
		return int64(x)
	case int64:
		return x
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0
		}
		return n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// toInt coerces a loosely-typed value to int, defaulting to 0.
func toInt(v any) int {
	return int(toInt64(v))
}

// toString coerces a loosely-typed value to string. Numbers are formatted
// without an exponent; nil and unsupported types default to "".
func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
