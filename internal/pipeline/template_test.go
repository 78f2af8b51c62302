package pipeline

import (
	"context"
	"errors"
	"testing"

	"returnnotifier/internal/events"
)

func TestExecute_NewEventDifferencesText(t *testing.T) {
	email := &fakeEmailSender{}
	settings := &fakeSettings{emailFrom: "returns@northwind.example", staffEmails: []string{"staff@northwind.example"}}
	op := newTestOperation(settings, email, &fakeSMSSender{})

	ev := newChangeEvent()
	ev.NotificationType = events.TypeNew
	ev.Differences = nil

	out, err := op.Execute(context.Background(), ev)
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if !out.StaffEmailSent {
		t.Error("StaffEmailSent = false, want true")
	}
	// NEW events never reach client channels.
	if out.ClientEmailSent || out.ClientSMS.Sent {
		t.Error("client channels should not fire for NEW events")
	}
}

func TestBuildTemplateData_ChangeDifferencesText(t *testing.T) {
	op := newTestOperation(&fakeSettings{}, &fakeEmailSender{}, &fakeSMSSender{})
	ev := newChangeEvent()

	resolved, err := op.validate(context.Background(), ev)
	if err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	data, err := op.buildTemplateData(context.Background(), resolved, ev)
	if err != nil {
		t.Fatalf("buildTemplateData() error = %v", err)
	}

	want := "Return status changed from Pending to Rejected"
	if data.Differences != want {
		t.Errorf("Differences = %q, want %q", data.Differences, want)
	}
}

func TestBuildTemplateData_NewDifferencesText(t *testing.T) {
	op := newTestOperation(&fakeSettings{}, &fakeEmailSender{}, &fakeSMSSender{})
	ev := newChangeEvent()
	ev.NotificationType = events.TypeNew

	resolved, err := op.validate(context.Background(), ev)
	if err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	data, err := op.buildTemplateData(context.Background(), resolved, ev)
	if err != nil {
		t.Fatalf("buildTemplateData() error = %v", err)
	}

	if data.Differences != "New return position added" {
		t.Errorf("Differences = %q, want New return position added", data.Differences)
	}
}

func TestBuildTemplateData_EmptyFieldAborts(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(ev *events.Event)
		wantField string
	}{
		{
			name:      "missing complaintId",
			mutate:    func(ev *events.Event) { ev.ComplaintID = 0 },
			wantField: "COMPLAINT_ID",
		},
		{
			name:      "missing complaintNumber",
			mutate:    func(ev *events.Event) { ev.ComplaintNumber = "" },
			wantField: "COMPLAINT_NUMBER",
		},
		{
			name:      "missing date",
			mutate:    func(ev *events.Event) { ev.Date = "" },
			wantField: "DATE",
		},
		{
			name: "change event without from-status",
			mutate: func(ev *events.Event) {
				ev.Differences = &events.StatusDiff{From: 0, To: 2}
			},
			wantField: "DIFFERENCES",
		},
		{
			name: "change event without differences",
			mutate: func(ev *events.Event) {
				ev.Differences = nil
			},
			wantField: "DIFFERENCES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := &fakeEmailSender{}
			sms := &fakeSMSSender{}
			settings := &fakeSettings{emailFrom: "returns@northwind.example", staffEmails: []string{"staff@northwind.example"}}
			op := newTestOperation(settings, email, sms)

			ev := newChangeEvent()
			tt.mutate(ev)

			_, err := op.Execute(context.Background(), ev)
			if err == nil {
				t.Fatal("Execute() error = nil, want incomplete template error")
			}

			var pe *Error
			if !errors.As(err, &pe) {
				t.Fatalf("Execute() error = %v, want *pipeline.Error", err)
			}
			if pe.Kind != KindIncompleteTemplate {
				t.Errorf("error kind = %d, want KindIncompleteTemplate", pe.Kind)
			}
			if pe.Code != 500 {
				t.Errorf("error code = %d, want 500", pe.Code)
			}
			wantMsg := "Template Data (" + tt.wantField + ") is empty!"
			if pe.Message != wantMsg {
				t.Errorf("error message = %q, want %q", pe.Message, wantMsg)
			}

			// The invariant must hold before any send is attempted.
			if email.count() != 0 {
				t.Errorf("email send count = %d, want 0", email.count())
			}
			if sms.called {
				t.Error("SMS should not be invoked when template data is incomplete")
			}
		})
	}
}

func TestTemplateData_Vars(t *testing.T) {
	data := &TemplateData{
		ComplaintID:       5,
		ComplaintNumber:   "C-5",
		CreatorID:         1,
		CreatorName:       "John Creator",
		ExpertID:          2,
		ExpertName:        "Jane Expert",
		ClientID:          20,
		ClientName:        "ACME Ltd",
		ConsumptionID:     7,
		ConsumptionNumber: "N-7",
		AgreementNumber:   "A-1",
		Date:              "2024-01-01",
		Differences:       "changed",
	}

	vars := data.Vars()
	if len(vars) != 13 {
		t.Fatalf("Vars() size = %d, want 13", len(vars))
	}
	if vars["COMPLAINT_ID"] != "5" {
		t.Errorf("COMPLAINT_ID = %q, want 5", vars["COMPLAINT_ID"])
	}
	if vars["CLIENT_NAME"] != "ACME Ltd" {
		t.Errorf("CLIENT_NAME = %q, want ACME Ltd", vars["CLIENT_NAME"])
	}
	if vars["DIFFERENCES"] != "changed" {
		t.Errorf("DIFFERENCES = %q, want changed", vars["DIFFERENCES"])
	}
}

func TestBuildTemplateData_ClientNameFallsBackToRawName(t *testing.T) {
	op := newTestOperation(&fakeSettings{}, &fakeEmailSender{}, &fakeSMSSender{})
	ev := newChangeEvent()

	resolved, err := op.validate(context.Background(), ev)
	if err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	// Test directory contractor has no first/last name, only the raw name.
	data, err := op.buildTemplateData(context.Background(), resolved, ev)
	if err != nil {
		t.Fatalf("buildTemplateData() error = %v", err)
	}
	if data.ClientName != "ACME Ltd" {
		t.Errorf("ClientName = %q, want ACME Ltd", data.ClientName)
	}
}
