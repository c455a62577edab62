// Package analytics holds pure functions over conversation history
// and app-usage stats: interest-level trend, aggregate stats, and the
// streak heuristic. Nothing here does I/O.
package analytics

import (
	"math"

	"github.com/azizmatyakubov/flirtkey/internal/coach"
)

// TrendLabel classifies the direction of the interest-level trend.
type TrendLabel string

const (
	TrendRising       TrendLabel = "rising"
	TrendDropping     TrendLabel = "dropping"
	TrendStable       TrendLabel = "stable"
	TrendInsufficient TrendLabel = "insufficient_data"
)

// trendWindow is how many recent scored entries feed the trend.
const trendWindow = 10

// trendBand is the delta beyond which the trend stops being stable.
const trendBand = 5

// Trend is the interest-level movement over the recent window.
type Trend struct {
	Delta int        `json:"delta"`
	Label TrendLabel `json:"label"`
}

// ComputeTrend reports the interest-level movement across the most
// recent scored entries. Entries arrive newest-first, the order the
// history store returns them. Fewer than two scored entries is
// insufficient data, not a fake flat trend.
func ComputeTrend(entries []coach.ConversationEntry) Trend {
	var levels []int // newest-first
	for _, e := range entries {
		if e.InterestLevel == nil {
			continue
		}
		levels = append(levels, *e.InterestLevel)
		if len(levels) == trendWindow {
			break
		}
	}

	if len(levels) < 2 {
		return Trend{Delta: 0, Label: TrendInsufficient}
	}

	newest := levels[0]
	oldest := levels[len(levels)-1]
	delta := newest - oldest

	label := TrendStable
	switch {
	case delta > trendBand:
		label = TrendRising
	case delta < -trendBand:
		label = TrendDropping
	}
	return Trend{Delta: delta, Label: label}
}

// Stats aggregates the defined interest levels of a history.
type Stats struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Average int `json:"average"`
	Count   int `json:"count"`
}

// AggregateStats summarizes all scored entries. An empty qualifying
// set yields the zero value, never a division fault.
func AggregateStats(entries []coach.ConversationEntry) Stats {
	var s Stats
	sum := 0
	for _, e := range entries {
		if e.InterestLevel == nil {
			continue
		}
		level := *e.InterestLevel
		if s.Count == 0 || level < s.Min {
			s.Min = level
		}
		if s.Count == 0 || level > s.Max {
			s.Max = level
		}
		sum += level
		s.Count++
	}
	if s.Count > 0 {
		s.Average = int(math.Round(float64(sum) / float64(s.Count)))
	}
	return s
}
