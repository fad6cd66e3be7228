package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/platform/crm"
)

// ---------- Mocks ----------

type mockMailer struct {
	sendCalls     int
	confirmations int
	lastInquiry   domain.ContactInquiry
	messageID     string
	sendErr       error
}

func (m *mockMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	m.sendCalls++
	return m.messageID, m.sendErr
}

func (m *mockMailer) SendContactInquiry(inq domain.ContactInquiry) (string, error) {
	if err := inq.Validate(); err != nil {
		return "", err
	}
	m.sendCalls++
	m.lastInquiry = inq
	return m.messageID, m.sendErr
}

func (m *mockMailer) SendBookingConfirmation(appt domain.Appointment) error {
	m.confirmations++
	return m.sendErr
}

type mockSyncer struct {
	calls  int
	last   domain.Appointment
	result crm.Result
	err    error
}

func (m *mockSyncer) Sync(_ context.Context, appt domain.Appointment) (crm.Result, error) {
	m.calls++
	m.last = appt
	return m.result, m.err
}

type mockPublisher struct {
	subjects []string
}

func (m *mockPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	m.subjects = append(m.subjects, subject)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) published(subject string) bool {
	for _, s := range m.subjects {
		if s == subject {
			return true
		}
	}
	return false
}

type mockApptRepo struct {
	appts     map[string]domain.Appointment
	createErr error
}

func newMockApptRepo() *mockApptRepo {
	return &mockApptRepo{appts: make(map[string]domain.Appointment)}
}

func (m *mockApptRepo) Create(_ context.Context, a *domain.Appointment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.appts[a.ID] = *a
	return nil
}

func (m *mockApptRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *mockApptRepo) List(_ context.Context, limit, offset int) ([]domain.Appointment, error) {
	out := make([]domain.Appointment, 0, len(m.appts))
	for _, a := range m.appts {
		out = append(out, a)
	}
	return out, nil
}

// memSessionStore round-trips through JSON so tests see the same
// serialization behavior as the redis store.
type memSessionStore struct {
	sessions map[string][]byte
	saveErr  error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string][]byte)}
}

func (m *memSessionStore) Save(_ context.Context, sess *domain.BookingSession) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	m.sessions[sess.ID] = raw
	return nil
}

func (m *memSessionStore) Get(_ context.Context, id string) (*domain.BookingSession, error) {
	raw, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	var sess domain.BookingSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (m *memSessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// ---------- Helpers ----------

func postJSON(t *testing.T, url string, body interface{}, wantStatus int) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("POST %s: expected status %d, got %d", url, wantStatus, resp.StatusCode)
	}
	return resp
}

func postRaw(t *testing.T, url, body string, wantStatus int) *http.Response {
	t.Helper()

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("POST %s: expected status %d, got %d", url, wantStatus, resp.StatusCode)
	}
	return resp
}

func getJSON(t *testing.T, url string, wantStatus int) *http.Response {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: expected status %d, got %d", url, wantStatus, resp.StatusCode)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
