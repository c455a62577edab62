package generate

import (
	"github.com/azizmatyakubov/flirtkey/internal/coach"
	"github.com/azizmatyakubov/flirtkey/internal/tone"
)

// MergeRegenerated splices a regenerated suggestion of one type into a
// previous result set. Only the matching-type element changes; the
// siblings are carried over untouched. If the fresh set lacks a
// suggestion of the requested type, the previous one is retained —
// regeneration never drops a suggestion. Identity is by type, not
// array index.
func MergeRegenerated(prev, fresh []coach.Suggestion, typ tone.SuggestionType) []coach.Suggestion {
	var replacement *coach.Suggestion
	for i := range fresh {
		if fresh[i].Type == typ {
			replacement = &fresh[i]
			break
		}
	}

	merged := make([]coach.Suggestion, len(prev))
	copy(merged, prev)
	if replacement == nil {
		return merged
	}

	for i := range merged {
		if merged[i].Type == typ {
			merged[i] = *replacement
			return merged
		}
	}
	// Previous set had no suggestion of this type; add the fresh one.
	return append(merged, *replacement)
}
