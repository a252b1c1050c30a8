package gmail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		baseURL:    srv.URL,
		httpClient: srv.Client(),
	}
}

func TestCreateDraft(t *testing.T) {
	var gotPath string
	var gotPayload struct {
		Message struct {
			Raw string `json:"raw"`
		} `json:"message"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		_, _ = w.Write([]byte(`{"id": "draft-abc123"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	id, err := c.CreateDraft(context.Background(), Message{
		To:      "hiring@example.com",
		Subject: "Application",
		Body:    "Dear Team,",
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if id != "draft-abc123" {
		t.Fatalf("unexpected draft id: %q", id)
	}
	if gotPath != "/users/me/drafts" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotPayload.Message.Raw == "" {
		t.Fatal("expected raw message in payload")
	}
}

func TestSend(t *testing.T) {
	var gotPath string
	var gotPayload struct {
		Raw string `json:"raw"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		_, _ = w.Write([]byte(`{"id": "msg-xyz789"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	id, err := c.Send(context.Background(), Message{
		To:      "hiring@example.com",
		Subject: "Application",
		Body:    "Dear Team,",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if id != "msg-xyz789" {
		t.Fatalf("unexpected message id: %q", id)
	}
	if gotPath != "/users/me/messages/send" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotPayload.Raw == "" {
		t.Fatal("expected raw message in payload")
	}
}

func TestSend_UnauthorizedWrapsErrAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Invalid Credentials", "status": "UNAUTHENTICATED"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.Send(context.Background(), Message{To: "hiring@example.com", Body: "x"})
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestSend_ServerErrorDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.Send(context.Background(), Message{To: "hiring@example.com", Body: "x"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Quota exceeded" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestSend_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.Send(context.Background(), Message{To: "hiring@example.com", Body: "x"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "upstream unavailable" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}
