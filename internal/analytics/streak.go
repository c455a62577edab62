package analytics

import (
	"math"
	"time"
)

// streakBreak is how long the app can go unopened before the streak
// is considered broken.
const streakBreak = 36 * time.Hour

// UsageStats are the aggregate app-open figures the streak heuristic
// runs on. There is no per-day open ledger; the streak is estimated
// from the open count and two timestamps.
type UsageStats struct {
	FirstOpenDate time.Time `json:"first_open_date"`
	LastOpenDate  time.Time `json:"last_open_date"`
	AppOpens      int       `json:"app_opens"`
}

// ComputeStreak estimates consecutive days of app usage.
//
// Returns 0 when either date is missing or the last open is more than
// 36 hours ago (streak broken). Returns 1 when the first open was
// today. Otherwise projects from the open rate: a near-daily rate
// (>= 0.8 opens/day) counts the full day span capped by total opens;
// a sparser rate scales down and caps at a week.
//
// A knowingly imprecise heuristic: two opens on one day followed by a
// gap can still read as active. The stored stats cannot support a
// real per-day ledger, so this stays an estimate.
func ComputeStreak(stats UsageStats, now time.Time) int {
	if stats.FirstOpenDate.IsZero() || stats.LastOpenDate.IsZero() {
		return 0
	}
	if now.Sub(stats.LastOpenDate) > streakBreak {
		return 0
	}

	daysSinceFirst := int(now.Sub(stats.FirstOpenDate).Hours() / 24)
	if daysSinceFirst <= 0 {
		return 1
	}

	opensPerDay := float64(stats.AppOpens) / math.Max(float64(daysSinceFirst), 1)
	if opensPerDay >= 0.8 {
		return min(daysSinceFirst+1, stats.AppOpens)
	}
	return min(int(math.Ceil(opensPerDay*3)), 7)
}
