package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPerformOCR_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer ocr-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.ImageBase64 != "aGVsbG8=" {
			t.Errorf("unexpected image payload: %q", req.ImageBase64)
		}
		json.NewEncoder(w).Encode(response{Success: true, Text: "27, loves hiking and oat lattes"})
	}))
	defer server.Close()

	c := NewClient()
	c.SetTestTransport(server.URL)

	text, err := c.PerformOCR(context.Background(), "aGVsbG8=", "ocr-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "27, loves hiking and oat lattes" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestPerformOCR_FailureAndEmptyAreTerminal(t *testing.T) {
	tests := []struct {
		name string
		resp response
	}{
		{"success false", response{Success: false, Text: "ignored"}},
		{"empty text", response{Success: true, Text: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.resp)
			}))
			defer server.Close()

			c := NewClient()
			c.SetTestTransport(server.URL)

			_, err := c.PerformOCR(context.Background(), "img", "k")
			if !errors.Is(err, ErrNoText) {
				t.Fatalf("expected ErrNoText, got %v", err)
			}
		})
	}
}

func TestPerformOCR_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient()
	c.SetTestTransport(server.URL)

	_, err := c.PerformOCR(context.Background(), "img", "k")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError for non-200 status, got %v", err)
	}
	if statusErr.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", statusErr.Status)
	}
}
