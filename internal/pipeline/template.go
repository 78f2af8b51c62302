package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"returnnotifier/internal/events"
)

// TemplateData is the fixed variable bag rendered into every notification.
// It is immutable once built: every field must be non-empty before any
// channel is attempted.
type TemplateData struct {
	ComplaintID       int
	ComplaintNumber   string
	CreatorID         int64
	CreatorName       string
	ExpertID          int64
	ExpertName        string
	ClientID          int64
	ClientName        string
	ConsumptionID     int
	ConsumptionNumber string
	AgreementNumber   string
	Date              string
	Differences       string
}

// templateField pairs a variable name with its rendered value, in the
// stable order templates expect.
type templateField struct {
	name  string
	value string
}

func (d *TemplateData) fields() []templateField {
	return []templateField{
		{"COMPLAINT_ID", itoa(d.ComplaintID)},
		{"COMPLAINT_NUMBER", d.ComplaintNumber},
		{"CREATOR_ID", itoa64(d.CreatorID)},
		{"CREATOR_NAME", d.CreatorName},
		{"EXPERT_ID", itoa64(d.ExpertID)},
		{"EXPERT_NAME", d.ExpertName},
		{"CLIENT_ID", itoa64(d.ClientID)},
		{"CLIENT_NAME", d.ClientName},
		{"CONSUMPTION_ID", itoa(d.ConsumptionID)},
		{"CONSUMPTION_NUMBER", d.ConsumptionNumber},
		{"AGREEMENT_NUMBER", d.AgreementNumber},
		{"DATE", d.Date},
		{"DIFFERENCES", d.Differences},
	}
}

// Vars returns the template variable bag keyed by variable name.
func (d *TemplateData) Vars() map[string]string {
	fields := d.fields()
	vars := make(map[string]string, len(fields))
	for _, f := range fields {
		vars[f.name] = f.value
	}
	return vars
}

// buildTemplateData assembles the variable bag from resolved entities and
// the event, then enforces the completeness invariant: any empty field
// aborts with a 500-class error before a single notification goes out.
//
// The differences text is legitimately empty only when the event matches
// neither the NEW branch nor the CHANGE-with-both-codes branch, and the
// invariant then rejects the event. A CHANGE event whose differences
// resolve empty therefore never dispatches; this coupling is deliberate.
func (o *Operation) buildTemplateData(ctx context.Context, resolved *resolvedEntities, ev *events.Event) (*TemplateData, error) {
	differences, err := o.buildDifferences(ctx, resolved, ev)
	if err != nil {
		return nil, err
	}

	data := &TemplateData{
		ComplaintID:       ev.ComplaintID,
		ComplaintNumber:   ev.ComplaintNumber,
		CreatorID:         resolved.creator.ID,
		CreatorName:       resolved.creator.FullName(),
		ExpertID:          resolved.expert.ID,
		ExpertName:        resolved.expert.FullName(),
		ClientID:          resolved.client.ID,
		ClientName:        resolved.client.DisplayName(),
		ConsumptionID:     ev.ConsumptionID,
		ConsumptionNumber: ev.ConsumptionNumber,
		AgreementNumber:   ev.AgreementNumber,
		Date:              ev.Date,
		Differences:       differences,
	}

	for _, f := range data.fields() {
		if isEmptyValue(f.value) {
			return nil, NewIncompleteTemplate(f.name)
		}
	}

	return data, nil
}

// buildDifferences derives the localized status-transition text.
func (o *Operation) buildDifferences(ctx context.Context, resolved *resolvedEntities, ev *events.Event) (string, error) {
	switch {
	case ev.NotificationType == events.TypeNew:
		text, err := o.localizer.Localize(ctx, TemplateNewPositionAdded, nil, resolved.seller.ID)
		if err != nil {
			return "", fmt.Errorf("failed to localize %s: %w", TemplateNewPositionAdded, err)
		}
		return text, nil

	case ev.NotificationType == events.TypeChange && ev.HasStatusFrom() && ev.HasStatusTo():
		vars := map[string]string{
			"FROM": events.StatusName(ev.Differences.From),
			"TO":   events.StatusName(ev.Differences.To),
		}
		text, err := o.localizer.Localize(ctx, TemplatePositionStatusHasChanged, vars, resolved.seller.ID)
		if err != nil {
			return "", fmt.Errorf("failed to localize %s: %w", TemplatePositionStatusHasChanged, err)
		}
		return text, nil

	default:
		return "", nil
	}
}

// isEmptyValue mirrors the falsy check applied to every template field:
// empty strings and textual zeros both count as unset.
func isEmptyValue(v string) bool {
	return v == "" || v == "0"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}
