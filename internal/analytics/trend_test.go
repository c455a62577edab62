package analytics

import (
	"testing"

	"github.com/azizmatyakubov/flirtkey/internal/coach"
)

// scored builds newest-first entries from newest-first interest
// levels; a negative level means unscored.
func scored(levels ...int) []coach.ConversationEntry {
	entries := make([]coach.ConversationEntry, len(levels))
	for i, l := range levels {
		if l >= 0 {
			v := l
			entries[i].InterestLevel = &v
		}
	}
	return entries
}

func TestComputeTrend_InsufficientData(t *testing.T) {
	tests := []struct {
		name    string
		entries []coach.ConversationEntry
	}{
		{"no entries", nil},
		{"one entry", scored(40)},
		{"two entries but only one scored", scored(40, -1)},
		{"all unscored", scored(-1, -1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := ComputeTrend(tt.entries)
			if trend.Label != TrendInsufficient {
				t.Errorf("expected insufficient data, got %q (delta %d)", trend.Label, trend.Delta)
			}
		})
	}
}

func TestComputeTrend_Labels(t *testing.T) {
	tests := []struct {
		name      string
		entries   []coach.ConversationEntry // newest-first
		wantDelta int
		wantLabel TrendLabel
	}{
		{"rising", scored(60, 40), 20, TrendRising},
		{"dropping", scored(30, 70), -40, TrendDropping},
		{"stable within band", scored(45, 42), 3, TrendStable},
		{"exact band edge is stable", scored(45, 40), 5, TrendStable},
		{"just past band rises", scored(46, 40), 6, TrendRising},
		{"unscored entries skipped", scored(60, -1, 40), 20, TrendRising},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := ComputeTrend(tt.entries)
			if trend.Delta != tt.wantDelta {
				t.Errorf("delta = %d, want %d", trend.Delta, tt.wantDelta)
			}
			if trend.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", trend.Label, tt.wantLabel)
			}
		})
	}
}

func TestComputeTrend_WindowTakesMostRecent(t *testing.T) {
	// 12 scored entries newest-first; only the newest 10 qualify, so
	// the two oldest (90, 95) must be ignored.
	levels := []int{50, 50, 50, 50, 50, 50, 50, 50, 50, 20, 90, 95}
	trend := ComputeTrend(scored(levels...))
	if trend.Delta != 30 {
		t.Errorf("delta = %d, want 30 (window must cut at %d entries)", trend.Delta, trendWindow)
	}
	if trend.Label != TrendRising {
		t.Errorf("label = %q, want rising", trend.Label)
	}
}

func TestAggregateStats(t *testing.T) {
	stats := AggregateStats(scored(60, -1, 20, 40))
	if stats.Count != 3 {
		t.Errorf("count = %d, want 3", stats.Count)
	}
	if stats.Min != 20 || stats.Max != 60 {
		t.Errorf("min/max = %d/%d, want 20/60", stats.Min, stats.Max)
	}
	if stats.Average != 40 {
		t.Errorf("average = %d, want 40", stats.Average)
	}
}

func TestAggregateStats_RoundsAverage(t *testing.T) {
	stats := AggregateStats(scored(50, 51))
	if stats.Average != 51 {
		t.Errorf("average = %d, want 51 (50.5 rounds up)", stats.Average)
	}
}

func TestAggregateStats_EmptyIsZero(t *testing.T) {
	stats := AggregateStats(nil)
	if stats != (Stats{}) {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	stats = AggregateStats(scored(-1, -1))
	if stats != (Stats{}) {
		t.Errorf("expected zero stats for unscored entries, got %+v", stats)
	}
}

func TestAggregateStats_ZeroIsARealScore(t *testing.T) {
	stats := AggregateStats(scored(0, 10))
	if stats.Count != 2 {
		t.Errorf("count = %d, want 2 (zero is a valid score)", stats.Count)
	}
	if stats.Min != 0 {
		t.Errorf("min = %d, want 0", stats.Min)
	}
}
