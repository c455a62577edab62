// Package humanize post-processes generated text so it reads like the
// user's own texting instead of model output. The transform is
// deterministic: identical text and Options (including Seed) always
// produce identical output, so tests are reproducible.
package humanize

import (
	"hash/fnv"
	"math/rand"
	"strings"
	"unicode"

	"github.com/azizmatyakubov/flirtkey/internal/coach"
)

// casualThreshold is the CasualLevel at or above which the
// contraction rewrite fires. Below it text stays closer to its formal
// form.
const casualThreshold = 0.5

// Options controls the humanization stages. Reference is the original
// incoming message, used as the energy signal for MatchEnergy. Seed
// drives the single randomized sub-choice (typo placement).
type Options struct {
	CasualLevel      float64
	UseAbbreviations bool
	AddTypos         bool
	MatchEnergy      bool
	Reference        string
	Seed             int64
}

// FromStyle derives Options from the user's style profile:
// CasualLevel = 1 - Formality. Typos stay off unless the caller opts
// in; energy matching is on because mirroring the incoming message is
// the point of the feature.
func FromStyle(style coach.UserStyleProfile, herMessage string, seed int64) Options {
	return Options{
		CasualLevel:      1 - style.Formality,
		UseAbbreviations: style.UseAbbreviations,
		AddTypos:         false,
		MatchEnergy:      true,
		Reference:        herMessage,
		Seed:             seed,
	}
}

// TextSeed derives a stable seed from a string. Generation flows seed
// each suggestion's typo choice from its own text, so repeated runs
// over the same result are reproducible.
func TextSeed(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// Humanize applies the configured stages in fixed order: casualness
// rewrite, abbreviation substitution, typo injection, energy
// matching. It never returns an empty string for non-empty input and
// never grows the text by more than one added character.
func Humanize(text string, opts Options) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	out := text
	if opts.CasualLevel >= casualThreshold {
		out = casualize(out)
	}
	if opts.UseAbbreviations {
		out = abbreviate(out)
	}
	if opts.AddTypos {
		out = injectTypo(out, opts.Seed)
	}
	if opts.MatchEnergy {
		out = matchEnergy(out, opts.Reference)
	}
	return out
}

// casualize substitutes contractions for formal phrasing. Matches are
// whole words only, at most two words long, and never across
// punctuation.
func casualize(text string) string {
	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		if i+1 < len(words) {
			c1, t1 := splitCore(words[i])
			c2, t2 := splitCore(words[i+1])
			key := strings.ToLower(c1) + " " + strings.ToLower(c2)
			if rep, ok := contractions[key]; ok && t1 == "" {
				out = append(out, matchCase(rep, c1)+t2)
				i += 2
				continue
			}
		}
		c, tr := splitCore(words[i])
		if rep, ok := contractions[strings.ToLower(c)]; ok {
			out = append(out, matchCase(rep, c)+tr)
		} else {
			out = append(out, words[i])
		}
		i++
	}
	return strings.Join(out, " ")
}

// abbreviate applies the texting dictionary to whole words,
// preserving the case of the first letter.
func abbreviate(text string) string {
	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for _, w := range words {
		c, tr := splitCore(w)
		if rep, ok := abbreviations[strings.ToLower(c)]; ok {
			out = append(out, matchCase(rep, c)+tr)
		} else {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

// injectTypo perturbs at most one word: an adjacent-key substitution
// or a double-letter drop. Never the first or last word, never a word
// under four letters, never producing an empty word.
func injectTypo(text string, seed int64) string {
	words := strings.Fields(text)
	if len(words) < 3 {
		return text
	}

	var eligible []int
	for i := 1; i < len(words)-1; i++ {
		c, _ := splitCore(words[i])
		if len([]rune(c)) >= 4 && isAlpha(c) {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return text
	}

	rng := rand.New(rand.NewSource(seed))
	idx := eligible[rng.Intn(len(eligible))]
	c, tr := splitCore(words[idx])
	words[idx] = perturb(c, rng) + tr
	return strings.Join(words, " ")
}

func perturb(word string, rng *rand.Rand) string {
	runes := []rune(word)

	// Prefer dropping one half of a doubled letter when present.
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] == runes[i+1] && rng.Intn(2) == 0 {
			return string(runes[:i]) + string(runes[i+1:])
		}
	}

	// Otherwise substitute a random letter with a keyboard neighbor.
	pos := rng.Intn(len(runes))
	lower := unicode.ToLower(runes[pos])
	neighbors, ok := adjacentKeys[lower]
	if !ok {
		return word
	}
	sub := rune(neighbors[rng.Intn(len(neighbors))])
	if unicode.IsUpper(runes[pos]) {
		sub = unicode.ToUpper(sub)
	}
	runes[pos] = sub
	return string(runes)
}

// matchEnergy mirrors the incoming message's exclamation energy:
// an energetic reference earns the text a single trailing "!", a flat
// one flattens stacked exclamation marks down to one.
func matchEnergy(text, reference string) string {
	if strings.Count(reference, "!") > 0 {
		if strings.HasSuffix(text, "!") {
			return text
		}
		return strings.TrimSuffix(text, ".") + "!"
	}
	for strings.HasSuffix(text, "!!") {
		text = strings.TrimSuffix(text, "!")
	}
	return text
}

// splitCore separates a word token into its letter core and trailing
// punctuation.
func splitCore(word string) (core, trail string) {
	runes := []rune(word)
	end := len(runes)
	for end > 0 && isTrailPunct(runes[end-1]) {
		end--
	}
	return string(runes[:end]), string(runes[end:])
}

func isTrailPunct(r rune) bool {
	switch r {
	case '.', ',', '!', '?', ';', ':', '…':
		return true
	}
	return false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// matchCase uppercases the first rune of rep when orig starts
// uppercase.
func matchCase(rep, orig string) string {
	if orig == "" || rep == "" {
		return rep
	}
	or := []rune(orig)
	if !unicode.IsUpper(or[0]) {
		return rep
	}
	rr := []rune(rep)
	rr[0] = unicode.ToUpper(rr[0])
	return string(rr)
}
