package tone

import "strings"

// SuggestionType is the risk tier of a reply suggestion.
type SuggestionType string

const (
	Safe         SuggestionType = "safe"
	Balanced     SuggestionType = "balanced"
	BoldReply    SuggestionType = "bold"
	DefaultReply                = Balanced
)

// SuggestionTypes returns the tiers in ascending risk order.
func SuggestionTypes() []SuggestionType {
	return []SuggestionType{Safe, Balanced, BoldReply}
}

// ParseSuggestionType matches a raw string against the closed tier
// set, tolerating whitespace and casing. ok is false for anything off
// the set; callers validating client input should reject rather than
// coerce.
func ParseSuggestionType(raw string) (SuggestionType, bool) {
	s := SuggestionType(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case Safe, Balanced, BoldReply:
		return s, true
	}
	return DefaultReply, false
}

// NormalizeSuggestionType coerces a raw backend string onto the closed
// tier set, defaulting to balanced. Total over all strings.
func NormalizeSuggestionType(raw string) SuggestionType {
	s, _ := ParseSuggestionType(raw)
	return s
}
