package generate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/azizmatyakubov/flirtkey/internal/backend"
	"github.com/azizmatyakubov/flirtkey/internal/coach"
	"github.com/azizmatyakubov/flirtkey/internal/parse"
	"github.com/azizmatyakubov/flirtkey/internal/tone"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func completionWith(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
		})
	}
}

// formalSettings keeps humanization near-identity so tests can assert
// on backend text.
func formalSettings() Settings {
	return Settings{Style: coach.UserStyleProfile{Formality: 1}, Coaching: true}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, settings Settings) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	b := backend.NewClient("test-model", 1024, 0.8)
	b.SetTestTransport(server.URL)
	return New(b, settings, discardLogger())
}

const replyJSON = `{
	"suggestions": [
		{"type": "safe", "text": "Not much, just got back from a run. You?", "reason": "Low pressure."},
		{"type": "balanced", "text": "Plotting my next bad decision. Want in?", "reason": "Playful."},
		{"type": "bold", "text": "Thinking about you, obviously.", "reason": "Direct."}
	],
	"proTip": "Keep it short, she opened with low effort.",
	"interestLevel": 65
}`

func TestGenerateReplies_EndToEnd(t *testing.T) {
	c := newTestClient(t, completionWith(replyJSON), formalSettings())

	contact := coach.Contact{ID: "c-1", RelationshipStage: coach.StageTalking}
	result, err := c.GenerateReplies(context.Background(), "key", contact, "hey what's up", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(result.Suggestions))
	}
	seen := map[tone.SuggestionType]bool{}
	for _, s := range result.Suggestions {
		if seen[s.Type] {
			t.Errorf("duplicate suggestion type %q", s.Type)
		}
		seen[s.Type] = true
		if s.Text == "" {
			t.Error("suggestion text must not be empty")
		}
	}
	if !seen[tone.Safe] || !seen[tone.Balanced] || !seen[tone.BoldReply] {
		t.Errorf("expected one suggestion per type, got %v", seen)
	}
	if result.InterestLevel == nil || *result.InterestLevel != 65 {
		t.Errorf("expected interest level 65, got %v", result.InterestLevel)
	}
	if result.ProTip == "" {
		t.Error("expected pro tip")
	}
}

func TestGenerateReplies_MissingKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call may happen without a key")
	}, formalSettings())

	_, err := c.GenerateReplies(context.Background(), "  ", coach.Contact{}, "hey", "")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestGenerateReplies_EmptyInput(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call may happen for empty input")
	}, formalSettings())

	_, err := c.GenerateReplies(context.Background(), "key", coach.Contact{}, "   \n", "")
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestGenerateReplies_ParseFailureIsNotSilent(t *testing.T) {
	c := newTestClient(t, completionWith("I'd rather write you a poem."), formalSettings())

	result, err := c.GenerateReplies(context.Background(), "key", coach.Contact{}, "hey", "")
	var pe *parse.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if result != nil {
		t.Error("a failed generation must not return a partial result")
	}
}

func TestGenerateReplies_BackendStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, formalSettings())

	_, err := c.GenerateReplies(context.Background(), "key", coach.Contact{}, "hey", "")
	var se *backend.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", se.Status)
	}
}

func TestGenerateReplies_EmptyCompletionIsParseError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}, formalSettings())

	_, err := c.GenerateReplies(context.Background(), "key", coach.Contact{}, "hey", "")
	var pe *parse.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError for empty completion, got %v", err)
	}
}

func TestGenerateOpeners_EndToEnd(t *testing.T) {
	openerJSON := `{"openers": [
		{"text": "So Peru — best meal you had there?", "tone": "casual", "explanation": "References the trip."},
		{"text": "Your dog clearly runs the household.", "tone": "Witty ", "explanation": "Teases a profile detail."}
	]}`
	c := newTestClient(t, completionWith(openerJSON), formalSettings())

	openers, err := c.GenerateOpeners(context.Background(), "key", "Peru trip photos, golden retriever", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(openers) != 2 {
		t.Fatalf("expected 2 openers, got %d", len(openers))
	}
	if openers[1].Tone != tone.Witty {
		t.Errorf("expected coerced witty tone, got %q", openers[1].Tone)
	}
	if openers[0].Explanation == "" {
		t.Error("coaching mode should keep explanations")
	}
}

func TestGenerateOpeners_CoachingOffDropsExplanations(t *testing.T) {
	openerJSON := `{"openers": [{"text": "hey there", "tone": "casual", "explanation": "should vanish"}]}`
	settings := formalSettings()
	settings.Coaching = false
	c := newTestClient(t, completionWith(openerJSON), settings)

	openers, err := c.GenerateOpeners(context.Background(), "key", "profile", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if openers[0].Explanation != "" {
		t.Errorf("expected explanation dropped, got %q", openers[0].Explanation)
	}
}

func TestGenerateOpeners_EmptyProfile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call may happen for empty profile text")
	}, formalSettings())

	_, err := c.GenerateOpeners(context.Background(), "key", "  ", nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}
