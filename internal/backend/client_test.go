package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
		},
	}
}

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected json content type, got %q", got)
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("expected model test-model, got %q", req.Model)
		}
		if req.MaxTokens != 1024 {
			t.Errorf("expected max_tokens 1024, got %d", req.MaxTokens)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		if req.Messages[1].Content != "hello" {
			t.Errorf("expected user content hello, got %q", req.Messages[1].Content)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(completionBody("world"))
	}))
	defer server.Close()

	c := NewClient("test-model", 1024, 0.8)
	c.SetTestTransport(server.URL)

	result, err := c.Complete(context.Background(), "test-key", "you are a test", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "world" {
		t.Errorf("expected 'world', got %q", result)
	}
}

func TestComplete_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	c := NewClient("test-model", 100, 0.8)
	c.SetTestTransport(server.URL)

	_, err := c.Complete(context.Background(), "k", "", "hi")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", se.Status)
	}
	if !se.Transient() {
		t.Error("429 should be transient")
	}
}

func TestStatusError_Transient(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{400, false},
		{401, false},
		{404, false},
		{429, true},
		{500, true},
		{503, true},
	}
	for _, tt := range tests {
		se := &StatusError{Status: tt.status}
		if se.Transient() != tt.want {
			t.Errorf("Transient() for %d = %v, want %v", tt.status, se.Transient(), tt.want)
		}
	}
}

func TestComplete_TransportError(t *testing.T) {
	c := NewClient("test-model", 100, 0.8)
	c.SetTestTransport("http://127.0.0.1:1") // nothing listens here

	_, err := c.Complete(context.Background(), "k", "", "hi")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestComplete_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	c := NewClient("test-model", 100, 0.8)
	c.SetTestTransport(server.URL)

	_, err := c.Complete(context.Background(), "k", "", "hi")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}
