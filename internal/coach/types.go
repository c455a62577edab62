package coach

import (
	"time"

	"github.com/google/uuid"

	"github.com/azizmatyakubov/flirtkey/internal/tone"
)

// RelationshipStage tracks how far along a conversation is. It shades
// the prompt context so suggestions match the stakes.
type RelationshipStage string

const (
	StageJustMet  RelationshipStage = "just_met"
	StageTalking  RelationshipStage = "talking"
	StageFlirting RelationshipStage = "flirting"
	StageDating   RelationshipStage = "dating"
	StageSerious  RelationshipStage = "serious"
)

// Contact is the person the user is texting. Owned by the host app;
// the pipeline only reads it. MessageCount and LastMessageDate are
// maintained exclusively by the history store's append transaction.
type Contact struct {
	ID                string
	Name              string
	RelationshipStage RelationshipStage
	Culture           string
	Personality       string
	Interests         string
	Topics            string
	RedFlags          string
	GreenFlags        string
	MessageCount      int
	LastTopic         string
	LastMessageDate   time.Time
}

// Suggestion is one generated reply. Identity within a result set is
// positional by Type, not by array index.
type Suggestion struct {
	Type   tone.SuggestionType `json:"type"`
	Text   string              `json:"text"`
	Reason string              `json:"reason"`
}

// AnalysisResult is the outcome of one reply generation: exactly one
// suggestion per tier, a coaching tip, and the backend's read on her
// engagement. InterestLevel is nil when the backend did not score it —
// zero is a real score and must not stand in for missing.
type AnalysisResult struct {
	Suggestions   []Suggestion
	ProTip        string
	InterestLevel *int
}

// GeneratedOpener is one conversation opener for a dating profile.
// Ephemeral: held in the caller's result set, never persisted.
type GeneratedOpener struct {
	Text        string
	Tone        tone.Tone
	Explanation string
}

// ConversationEntry is one generation outcome in a contact's
// append-only history. Immutable once created.
type ConversationEntry struct {
	ID            uuid.UUID
	ContactID     string
	HerMessage    string
	Suggestions   []Suggestion
	ProTip        string
	InterestLevel *int
	Timestamp     time.Time
}

// UserStyleProfile is the user's texting style, read from host
// settings. Formality 0 is full slang, 1 is buttoned-up.
type UserStyleProfile struct {
	Formality        float64
	UseAbbreviations bool
}
