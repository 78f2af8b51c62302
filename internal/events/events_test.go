package events

import (
	"testing"
)

func TestParse_FullEvent(t *testing.T) {
	data := []byte(`{
		"notificationType": 2,
		"resellerId": 10,
		"clientId": 20,
		"creatorId": 1,
		"expertId": 2,
		"complaintId": 5,
		"complaintNumber": "C-5",
		"consumptionId": 7,
		"consumptionNumber": "N-7",
		"agreementNumber": "A-1",
		"date": "2024-01-01",
		"differences": {"from": 1, "to": 2}
	}`)

	ev, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	if ev.NotificationType != TypeChange {
		t.Errorf("NotificationType = %d, want %d", ev.NotificationType, TypeChange)
	}
	if ev.ResellerID != 10 {
		t.Errorf("ResellerID = %d, want 10", ev.ResellerID)
	}
	if ev.ClientID != 20 {
		t.Errorf("ClientID = %d, want 20", ev.ClientID)
	}
	if ev.ComplaintNumber != "C-5" {
		t.Errorf("ComplaintNumber = %q, want C-5", ev.ComplaintNumber)
	}
	if ev.Differences == nil {
		t.Fatal("Differences should not be nil")
	}
	if ev.Differences.From != 1 || ev.Differences.To != 2 {
		t.Errorf("Differences = %+v, want {From:1 To:2}", ev.Differences)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	if err == nil {
		t.Error("Parse() should return error for malformed JSON")
	}
}

func TestFromMap_Coercion(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want Event
	}{
		{
			name: "numeric strings",
			raw: map[string]any{
				"notificationType": "2",
				"resellerId":       "10",
				"complaintId":      "5",
			},
			want: Event{NotificationType: 2, ResellerID: 10, ComplaintID: 5},
		},
		{
			name: "json numbers",
			raw: map[string]any{
				"notificationType": float64(1),
				"clientId":         float64(20),
			},
			want: Event{NotificationType: 1, ClientID: 20},
		},
		{
			name: "garbage collapses to zero",
			raw: map[string]any{
				"notificationType": "abc",
				"resellerId":       []any{1, 2},
				"complaintNumber":  map[string]any{},
			},
			want: Event{},
		},
		{
			name: "missing keys default",
			raw:  map[string]any{},
			want: Event{},
		},
		{
			name: "number coerced to string field",
			raw: map[string]any{
				"agreementNumber": float64(42),
			},
			want: Event{AgreementNumber: "42"},
		},
		{
			name: "whitespace trimmed in numeric string",
			raw: map[string]any{
				"creatorId": " 7 ",
			},
			want: Event{CreatorID: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromMap(tt.raw)
			if got.NotificationType != tt.want.NotificationType {
				t.Errorf("NotificationType = %d, want %d", got.NotificationType, tt.want.NotificationType)
			}
			if got.ResellerID != tt.want.ResellerID {
				t.Errorf("ResellerID = %d, want %d", got.ResellerID, tt.want.ResellerID)
			}
			if got.ClientID != tt.want.ClientID {
				t.Errorf("ClientID = %d, want %d", got.ClientID, tt.want.ClientID)
			}
			if got.CreatorID != tt.want.CreatorID {
				t.Errorf("CreatorID = %d, want %d", got.CreatorID, tt.want.CreatorID)
			}
			if got.ComplaintID != tt.want.ComplaintID {
				t.Errorf("ComplaintID = %d, want %d", got.ComplaintID, tt.want.ComplaintID)
			}
			if got.ComplaintNumber != tt.want.ComplaintNumber {
				t.Errorf("ComplaintNumber = %q, want %q", got.ComplaintNumber, tt.want.ComplaintNumber)
			}
			if got.AgreementNumber != tt.want.AgreementNumber {
				t.Errorf("AgreementNumber = %q, want %q", got.AgreementNumber, tt.want.AgreementNumber)
			}
		})
	}
}

func TestEvent_StatusHelpers(t *testing.T) {
	tests := []struct {
		name     string
		ev       Event
		wantFrom bool
		wantTo   bool
		wantCode int
	}{
		{
			name:     "no differences",
			ev:       Event{},
			wantFrom: false,
			wantTo:   false,
			wantCode: 0,
		},
		{
			name:     "both set",
			ev:       Event{Differences: &StatusDiff{From: 1, To: 2}},
			wantFrom: true,
			wantTo:   true,
			wantCode: 2,
		},
		{
			name:     "zero to treated as absent",
			ev:       Event{Differences: &StatusDiff{From: 1, To: 0}},
			wantFrom: true,
			wantTo:   false,
			wantCode: 0,
		},
		{
			name:     "zero from treated as absent",
			ev:       Event{Differences: &StatusDiff{From: 0, To: 2}},
			wantFrom: false,
			wantTo:   true,
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.HasStatusFrom(); got != tt.wantFrom {
				t.Errorf("HasStatusFrom() = %v, want %v", got, tt.wantFrom)
			}
			if got := tt.ev.HasStatusTo(); got != tt.wantTo {
				t.Errorf("HasStatusTo() = %v, want %v", got, tt.wantTo)
			}
			if got := tt.ev.StatusTo(); got != tt.wantCode {
				t.Errorf("StatusTo() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestStatusName(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "Completed"},
		{1, "Pending"},
		{2, "Rejected"},
		{99, ""},
	}

	for _, tt := range tests {
		if got := StatusName(tt.code); got != tt.want {
			t.Errorf("StatusName(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
