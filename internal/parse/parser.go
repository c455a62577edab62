// Package parse validates raw generation-backend output against the
// schema the prompt requested. The backend is probabilistic: it may
// wrap JSON in prose, drift on enum casing, exceed length caps, or
// drop fields. The parser repairs what it safely can and fails loudly
// on everything else — it never reports success with an empty result.
package parse

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/azizmatyakubov/flirtkey/internal/coach"
	"github.com/azizmatyakubov/flirtkey/internal/prompt"
	"github.com/azizmatyakubov/flirtkey/internal/tone"
)

// ParseError reports backend output that could not be coerced into a
// usable result. Not retried automatically; a fresh generation may
// succeed where this one failed.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse backend response: " + e.Reason
}

// RawOpener is one opener item as parsed from backend output, tone
// already coerced onto the catalog.
type RawOpener struct {
	Text        string
	Tone        tone.Tone
	Explanation string
}

type rawSuggestion struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

type rawReply struct {
	Suggestions   []rawSuggestion `json:"suggestions"`
	ProTip        string          `json:"proTip"`
	InterestLevel json.RawMessage `json:"interestLevel"`
}

type rawOpenerItem struct {
	Text        string `json:"text"`
	Tone        string `json:"tone"`
	Explanation string `json:"explanation"`
}

type rawOpenerResponse struct {
	Openers []rawOpenerItem `json:"openers"`
}

// ParseReplyResponse extracts and validates a reply-generation payload
// from raw backend text.
func ParseReplyResponse(raw string) (*coach.AnalysisResult, error) {
	obj, ok := extractJSONObject(raw)
	if !ok {
		return nil, &ParseError{Reason: "no JSON object in response"}
	}

	var resp rawReply
	if err := json.Unmarshal([]byte(obj), &resp); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}

	var suggestions []coach.Suggestion
	for _, s := range resp.Suggestions {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			// Item without text is useless; drop it rather than
			// aborting the batch.
			continue
		}
		suggestions = append(suggestions, coach.Suggestion{
			Type:   tone.NormalizeSuggestionType(s.Type),
			Text:   truncate(text, prompt.MaxTextChars),
			Reason: truncate(strings.TrimSpace(s.Reason), prompt.MaxTextChars),
		})
	}
	if len(suggestions) == 0 {
		return nil, &ParseError{Reason: "no valid suggestions in response"}
	}

	return &coach.AnalysisResult{
		Suggestions:   suggestions,
		ProTip:        truncate(strings.TrimSpace(resp.ProTip), prompt.MaxTextChars),
		InterestLevel: parseInterestLevel(resp.InterestLevel),
	}, nil
}

// ParseOpenerResponse extracts and validates an opener-generation
// payload from raw backend text.
func ParseOpenerResponse(raw string) ([]RawOpener, error) {
	obj, ok := extractJSONObject(raw)
	if !ok {
		return nil, &ParseError{Reason: "no JSON object in response"}
	}

	var resp rawOpenerResponse
	if err := json.Unmarshal([]byte(obj), &resp); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}

	var openers []RawOpener
	for _, o := range resp.Openers {
		text := strings.TrimSpace(o.Text)
		if text == "" {
			continue
		}
		openers = append(openers, RawOpener{
			Text:        truncate(text, prompt.MaxTextChars),
			Tone:        tone.NormalizeTone(o.Tone),
			Explanation: truncate(strings.TrimSpace(o.Explanation), prompt.MaxTextChars),
		})
	}
	if len(openers) == 0 {
		return nil, &ParseError{Reason: "no valid openers in response"}
	}
	return openers, nil
}

// parseInterestLevel reads the interestLevel field tolerantly. Numbers
// (and numeric strings — backends drift) are clamped into [0,100].
// Absent or non-numeric means unknown, reported as nil: zero is a
// real, meaningful score and must not stand in for missing.
func parseInterestLevel(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	s := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	level := int(math.Round(f))
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	return &level
}

// truncate caps s at max runes, even though the prompt already
// requests the cap. Backends do not always comply.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
