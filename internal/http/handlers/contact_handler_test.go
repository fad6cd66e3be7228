package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/http/handlers"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/events"
)

func setupContactServer(mailer *mockMailer) (*httptest.Server, *mockPublisher) {
	bus := &mockPublisher{}
	h := handlers.NewContactHandler(mailer, bus)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Mount("/v1/contact", h.Routes())

	return httptest.NewServer(r), bus
}

func TestContact_Success(t *testing.T) {
	mail := &mockMailer{messageID: "stub-msg-123"}
	server, bus := setupContactServer(mail)
	defer server.Close()

	body := map[string]string{
		"name":    "Ana Pérez",
		"email":   "ana@example.com",
		"message": "Necesito asesoría",
	}
	resp := postJSON(t, server.URL+"/v1/contact", body, http.StatusOK)

	var result map[string]string
	decodeBody(t, resp, &result)

	if result["message_id"] != "stub-msg-123" {
		t.Fatalf("expected provider response id returned, got %q", result["message_id"])
	}
	if mail.sendCalls != 1 {
		t.Fatalf("expected exactly one outbound call, got %d", mail.sendCalls)
	}
	if mail.lastInquiry.Name != "Ana Pérez" {
		t.Fatalf("unexpected inquiry forwarded: %+v", mail.lastInquiry)
	}
	if !bus.published(events.InquiryReceived) {
		t.Fatal("expected inquiry.received event")
	}
}

func TestContact_MissingFields_NoOutboundCall(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "a@b.co", "message": "hola"}},
		{"missing email", map[string]string{"name": "Ana", "message": "hola"}},
		{"missing message", map[string]string{"name": "Ana", "email": "a@b.co"}},
		{"empty body", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mail := &mockMailer{messageID: "x"}
			server, _ := setupContactServer(mail)
			defer server.Close()

			resp := postJSON(t, server.URL+"/v1/contact", tt.body, http.StatusBadRequest)

			var result map[string]string
			decodeBody(t, resp, &result)

			if result["error"] != "missing required fields" {
				t.Fatalf("expected 'missing required fields', got %q", result["error"])
			}
			if mail.sendCalls != 0 {
				t.Fatalf("expected zero outbound calls, got %d", mail.sendCalls)
			}
		})
	}
}

func TestContact_ProviderFailure(t *testing.T) {
	mail := &mockMailer{sendErr: errors.New("mailersend error: status=422 body=invalid recipient")}
	server, _ := setupContactServer(mail)
	defer server.Close()

	body := map[string]string{"name": "Ana", "email": "a@b.co", "message": "hola"}
	resp := postJSON(t, server.URL+"/v1/contact", body, http.StatusInternalServerError)

	var result map[string]string
	decodeBody(t, resp, &result)

	if !strings.Contains(result["error"], "invalid recipient") {
		t.Fatalf("expected provider message surfaced, got %q", result["error"])
	}
	if mail.sendCalls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", mail.sendCalls)
	}
}

func TestContact_Preflight(t *testing.T) {
	mail := &mockMailer{}
	server, _ := setupContactServer(mail)
	defer server.Close()

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/v1/contact/", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("expected CORS headers on preflight response")
	}
	if mail.sendCalls != 0 {
		t.Fatal("preflight must not reach the mailer")
	}
}
