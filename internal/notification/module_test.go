package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"lead_management_backend/internal/events"
	"lead_management_backend/platform/apperr"
	"lead_management_backend/platform/logger"

	"github.com/google/uuid"
)

type testNotificationConfig struct{}

func (testNotificationConfig) GetAppBaseURL() string { return "https://app.example.com" }

type testContactReader struct {
	contact AssignmentContact
	err     error

	mu    sync.Mutex
	calls int
}

func (r *testContactReader) AssignmentContact(_ context.Context, leadDocumentNumber, sellerDocumentNumber string) (AssignmentContact, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if r.err != nil {
		return AssignmentContact{}, r.err
	}
	return r.contact, nil
}

type sentEmail struct {
	to           string
	sellerName   string
	leadName     string
	businessLine string
	leadURL      string
}

type testSender struct {
	mu    sync.Mutex
	sent  []sentEmail
	fail  bool
	calls int
}

func (s *testSender) SendLeadAssignedEmail(_ context.Context, toEmail, sellerName, leadName, businessLine, leadURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail {
		return fmt.Errorf("smtp send: connection refused")
	}
	s.sent = append(s.sent, sentEmail{
		to:           toEmail,
		sellerName:   sellerName,
		leadName:     leadName,
		businessLine: businessLine,
		leadURL:      leadURL,
	})
	return nil
}

func newTestModule(reader *testContactReader, sender *testSender) *Module {
	m := New(nil, sender, testNotificationConfig{}, logger.New("development"))
	m.repo = reader
	return m
}

func leadAssignedEvent(leadDoc, sellerDoc string) events.LeadAssigned {
	return events.LeadAssigned{
		BaseEvent:            events.NewBaseEvent(),
		CycleID:              uuid.New(),
		LeadDocumentNumber:   leadDoc,
		SellerDocumentNumber: sellerDoc,
		BusinessLineID:       1,
	}
}

func TestHandleLeadAssignedSendsSellerEmail(t *testing.T) {
	reader := &testContactReader{contact: AssignmentContact{
		SellerEmail:     "maria.perez@example.com",
		SellerGivenName: "Maria",
		SellerSurname:   "Perez",
		LeadGivenName:   "Juan",
		LeadSurname:     "Gomez",
		BusinessLine:    "Insurance",
	}}
	sender := &testSender{}
	m := newTestModule(reader, sender)

	if err := m.Handle(context.Background(), leadAssignedEvent("L1_11001", "S100")); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	got := sender.sent[0]
	if got.to != "maria.perez@example.com" {
		t.Errorf("unexpected recipient %q", got.to)
	}
	if got.sellerName != "Maria Perez" {
		t.Errorf("unexpected seller name %q", got.sellerName)
	}
	if got.leadName != "Juan Gomez" {
		t.Errorf("unexpected lead name %q", got.leadName)
	}
	if got.businessLine != "Insurance" {
		t.Errorf("unexpected business line %q", got.businessLine)
	}
	if got.leadURL != "https://app.example.com/leads/L1_11001" {
		t.Errorf("unexpected lead URL %q", got.leadURL)
	}
}

func TestHandleLeadAssignedSkipsWhenContactMissing(t *testing.T) {
	reader := &testContactReader{err: apperr.NotFound("assignment contact not found")}
	sender := &testSender{}
	m := newTestModule(reader, sender)

	if err := m.Handle(context.Background(), leadAssignedEvent("L1_11001", "S100")); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if sender.calls != 0 {
		t.Fatalf("expected no send attempts, got %d", sender.calls)
	}
}

func TestHandleLeadAssignedNeverPropagatesSendFailure(t *testing.T) {
	reader := &testContactReader{contact: AssignmentContact{SellerEmail: "s@example.com"}}
	sender := &testSender{fail: true}
	m := newTestModule(reader, sender)

	if err := m.Handle(context.Background(), leadAssignedEvent("L1_11001", "S100")); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if sender.calls != 1 {
		t.Fatalf("expected 1 send attempt, got %d", sender.calls)
	}
}

func TestHandleUnknownEventIsIgnored(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(&testContactReader{}, sender)

	err := m.Handle(context.Background(), events.LeadCreated{BaseEvent: events.NewBaseEvent()})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("expected no send attempts, got %d", sender.calls)
	}
}

func TestCloseDrainsAllQueuedSends(t *testing.T) {
	reader := &testContactReader{contact: AssignmentContact{
		SellerEmail:     "s@example.com",
		SellerGivenName: "Ana",
		SellerSurname:   "Lopez",
		LeadGivenName:   "Luis",
		LeadSurname:     "Mendez",
		BusinessLine:    "Banking",
	}}
	sender := &testSender{}
	m := newTestModule(reader, sender)

	const n = 12
	for i := 0; i < n; i++ {
		doc := fmt.Sprintf("L1_%d1000", i)
		if err := m.Handle(context.Background(), leadAssignedEvent(doc, "S100")); err != nil {
			t.Fatalf("Handle returned error: %v", err)
		}
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if len(sender.sent) != n {
		t.Fatalf("expected %d emails after Close, got %d", n, len(sender.sent))
	}
}
