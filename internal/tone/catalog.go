package tone

import "strings"

// Tone is a closed-set style label for generated openers.
type Tone string

const (
	Casual     Tone = "casual"
	Witty      Tone = "witty"
	Flirty     Tone = "flirty"
	Sweet      Tone = "sweet"
	Bold       Tone = "bold"
	Mysterious Tone = "mysterious"

	// Default is the tone unrecognized backend values coerce to.
	Default = Casual
)

// Entry describes one tone: its display name, the prompt fragment
// handed to the generation backend, and the emoji shown in the UI.
type Entry struct {
	Name   string
	Prompt string
	Emoji  string
}

// Catalog is the single source of truth for tones. Prompt text,
// parser coercion, and UI labels all read from here — never ad hoc
// strings elsewhere.
var Catalog = map[Tone]Entry{
	Casual: {
		Name:   "Casual",
		Prompt: "Relaxed and low-pressure, like texting a friend you already know. No pickup lines.",
		Emoji:  "😎",
	},
	Witty: {
		Name:   "Witty",
		Prompt: "Clever and playful with light teasing. A joke or observation that invites a comeback.",
		Emoji:  "😏",
	},
	Flirty: {
		Name:   "Flirty",
		Prompt: "Warm and charming with clear romantic interest, but never explicit or pushy.",
		Emoji:  "😘",
	},
	Sweet: {
		Name:   "Sweet",
		Prompt: "Genuine and kind. A sincere compliment tied to something specific in their profile.",
		Emoji:  "🥰",
	},
	Bold: {
		Name:   "Bold",
		Prompt: "Direct and confident. Takes a stance or makes a playful challenge. High risk, high reward.",
		Emoji:  "🔥",
	},
	Mysterious: {
		Name:   "Mysterious",
		Prompt: "Intriguing and a little withholding. Raises a question without answering it.",
		Emoji:  "🌙",
	},
}

// Keys returns the catalog tones in a stable order, for prompt
// enumeration and exhaustive iteration.
func Keys() []Tone {
	return []Tone{Casual, Witty, Flirty, Sweet, Bold, Mysterious}
}

// NormalizeTone coerces a raw backend string onto the closed tone set.
// Stray casing and whitespace are forgiven; anything unrecognized maps
// to Default. Total over all strings.
func NormalizeTone(raw string) Tone {
	t := Tone(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := Catalog[t]; ok {
		return t
	}
	return Default
}
