package localization

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeSource serves overrides from a map keyed by "resellerID/key".
type fakeSource struct {
	overrides map[string]string
	err       error
}

func (f *fakeSource) Template(_ context.Context, resellerID int64, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.overrides[fmt.Sprintf("%d/%s", resellerID, key)], nil
}

func TestCatalog_DefaultTemplates(t *testing.T) {
	catalog := NewCatalog(nil)
	ctx := context.Background()

	text, err := catalog.Localize(ctx, "NewPositionAdded", nil, 10)
	if err != nil {
		t.Fatalf("Localize() error = %v, want nil", err)
	}
	if text == "" {
		t.Error("Localize() returned empty text for default template")
	}
}

func TestCatalog_VariableSubstitution(t *testing.T) {
	catalog := NewCatalog(nil)
	ctx := context.Background()

	vars := map[string]string{"FROM": "Pending", "TO": "Rejected"}
	text, err := catalog.Localize(ctx, "PositionStatusHasChanged", vars, 10)
	if err != nil {
		t.Fatalf("Localize() error = %v, want nil", err)
	}

	if !strings.Contains(text, "Pending") || !strings.Contains(text, "Rejected") {
		t.Errorf("Localize() = %q, want both status names substituted", text)
	}
}

func TestCatalog_ResellerOverride(t *testing.T) {
	source := &fakeSource{overrides: map[string]string{
		"10/NewPositionAdded": "Neue Retourenposition hinzugefügt.",
	}}
	catalog := NewCatalog(source)
	ctx := context.Background()

	text, err := catalog.Localize(ctx, "NewPositionAdded", nil, 10)
	if err != nil {
		t.Fatalf("Localize() error = %v, want nil", err)
	}
	if text != "Neue Retourenposition hinzugefügt." {
		t.Errorf("Localize() = %q, want reseller override", text)
	}

	// Another reseller falls back to the default.
	text, err = catalog.Localize(ctx, "NewPositionAdded", nil, 11)
	if err != nil {
		t.Fatalf("Localize() error = %v, want nil", err)
	}
	if text == "Neue Retourenposition hinzugefügt." {
		t.Error("Localize() should not serve another reseller's override")
	}
}

func TestCatalog_SourceFailureFallsBackToDefault(t *testing.T) {
	source := &fakeSource{err: errors.New("db down")}
	catalog := NewCatalog(source)

	text, err := catalog.Localize(context.Background(), "NewPositionAdded", nil, 10)
	if err != nil {
		t.Fatalf("Localize() error = %v, want nil", err)
	}
	if text == "" {
		t.Error("Localize() should fall back to the default on source failure")
	}
}

func TestCatalog_UnknownKey(t *testing.T) {
	catalog := NewCatalog(nil)

	_, err := catalog.Localize(context.Background(), "NoSuchTemplate", nil, 10)
	if err == nil {
		t.Error("Localize() should return error for unknown template key")
	}
}

func TestCatalog_EmailBodyRendersAllVars(t *testing.T) {
	catalog := NewCatalog(nil)
	vars := map[string]string{
		"COMPLAINT_ID":       "5",
		"COMPLAINT_NUMBER":   "C-5",
		"CREATOR_ID":         "1",
		"CREATOR_NAME":       "John Creator",
		"EXPERT_ID":          "2",
		"EXPERT_NAME":        "Jane Expert",
		"CLIENT_ID":          "20",
		"CLIENT_NAME":        "ACME Ltd",
		"CONSUMPTION_ID":     "7",
		"CONSUMPTION_NUMBER": "N-7",
		"AGREEMENT_NUMBER":   "A-1",
		"DATE":               "2024-01-01",
		"DIFFERENCES":        "Return status has changed from Pending to Rejected.",
	}

	body, err := catalog.Localize(context.Background(), "complaintEmployeeEmailBody", vars, 10)
	if err != nil {
		t.Fatalf("Localize() error = %v, want nil", err)
	}

	for _, want := range []string{"C-5", "ACME Ltd", "N-7", "A-1", "John Creator", "Jane Expert", "2024-01-01"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}
