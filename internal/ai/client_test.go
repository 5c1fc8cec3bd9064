package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(url string) *Client {
	return NewClient(ClientConfig{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "sonar",
	})
}

func TestClientComplete(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "NEWS ITEM: hello"}},
			},
			"citations": []string{"https://example.com/a", "https://example.com/b"},
		})
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Complete(context.Background(), "find news")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got.Content != "NEWS ITEM: hello" {
		t.Errorf("Content = %q", got.Content)
	}
	if len(got.Citations) != 2 {
		t.Errorf("Citations = %v, want 2 entries", got.Citations)
	}
	if gotReq.Model != "sonar" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("request messages = %+v", gotReq.Messages)
	}
	if !gotReq.ReturnCitations {
		t.Error("request should ask for citations")
	}
}

func TestClientCompleteRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "find news")
	var rateLimited *RateLimitError
	if !errors.As(err, &rateLimited) {
		t.Fatalf("error = %v, want RateLimitError", err)
	}
	if rateLimited.RetryAfter != 30 {
		t.Errorf("RetryAfter = %d, want 30", rateLimited.RetryAfter)
	}
}

func TestClientCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "find news")
	var unavailable *ServiceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("error = %v, want ServiceUnavailableError", err)
	}
	if unavailable.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d", unavailable.StatusCode)
	}
}

func TestClientCompleteOtherHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such model", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "find news")
	var httpErr *ModelHTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v, want ModelHTTPError", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d", httpErr.StatusCode)
	}
}

func TestClientCompleteConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL).Complete(context.Background(), "find news")
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("error = %v, want ConnectionError", err)
	}
}

func TestClientCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "find news")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
	if isTransportError(err) {
		t.Errorf("empty-choices error should not be a transport error: %v", err)
	}
}

func TestClientCompleteMissingAPIKey(t *testing.T) {
	c := NewClient(ClientConfig{})
	if _, err := c.Complete(context.Background(), "find news"); err == nil {
		t.Fatal("expected error without API key")
	}
}
