// Package prompt assembles system/user prompt pairs for the
// generation backend. All builders are pure: no I/O, deterministic
// given their inputs.
package prompt

import (
	"fmt"
	"strings"

	"github.com/azizmatyakubov/flirtkey/internal/coach"
	"github.com/azizmatyakubov/flirtkey/internal/tone"
)

// Pair is a system/user prompt pair ready for a chat-completion call.
type Pair struct {
	System string
	User   string
}

// BuildReplyPrompt constructs the prompt pair for reply-suggestion
// generation. The schema instruction is strict so the parser can rely
// on shape; culture overrides the contact's stored culture when set.
func BuildReplyPrompt(contact coach.Contact, herMessage, culture string) Pair {
	if culture == "" {
		culture = contact.Culture
	}
	return Pair{
		System: fmt.Sprintf(replySystemPrompt, MaxTextChars),
		User: fmt.Sprintf(replyUserPrompt,
			herMessage,
			orUnknown(string(contact.RelationshipStage)),
			orUnknown(culture),
			orUnknown(contact.Personality),
			orUnknown(contact.Interests),
			orUnknown(contact.Topics),
			orUnknown(contact.GreenFlags),
			orUnknown(contact.RedFlags),
			contact.MessageCount,
		),
	}
}

// BuildOpenerPrompt constructs the prompt pair for profile-opener
// generation. A non-nil toneFilter narrows generation to that tone and
// its catalog fragment; otherwise the backend is asked to vary tones
// across the full catalog. coachingEnabled gates the per-item
// explanation field so disabled users don't pay its token cost.
func BuildOpenerPrompt(profileText string, toneFilter *tone.Tone, coachingEnabled bool) Pair {
	var instructions strings.Builder
	var toneEnum string

	if toneFilter != nil {
		t := *toneFilter
		entry := tone.Catalog[tone.NormalizeTone(string(t))]
		toneEnum = string(tone.NormalizeTone(string(t)))
		fmt.Fprintf(&instructions, "- All openers use the %s tone: %s\n", entry.Name, entry.Prompt)
	} else {
		keys := tone.Keys()
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = string(k)
			fmt.Fprintf(&instructions, "- %s tone: %s\n", tone.Catalog[k].Name, tone.Catalog[k].Prompt)
		}
		toneEnum = strings.Join(names, "|")
		instructions.WriteString(varietyInstruction)
	}

	explanationField := ""
	if coachingEnabled {
		instructions.WriteString(coachingInstruction)
		explanationField = `, "explanation": "string"`
	}

	return Pair{
		System: fmt.Sprintf(openerSystemPrompt, MaxTextChars, instructions.String(), toneEnum, explanationField),
		User:   fmt.Sprintf(openerUserPrompt, profileText),
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
