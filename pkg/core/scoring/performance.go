package scoring

import (
	"time"

	"github.com/sportsync/refassign/pkg/core/scheduling"
	"github.com/sportsync/refassign/pkg/db"
)

// PerformanceScore rates a referee's reliability over their assignment
// history (callers pass the trailing six months) and balances it against
// recent workload. Referees with no history score the configured neutral
// default rather than being penalized.
//
// Reliability combines acceptance, completion and decline rates; the
// workload factor discounts referees who already carry many assignments in
// the last 30 days so work spreads across the pool.
func PerformanceScore(history []db.RefereeAssignment, now time.Time, defaults Defaults) float64 {
	if len(history) == 0 {
		return defaults.NoHistoryPerformance
	}

	total := float64(len(history))
	accepted := 0.0
	completed := 0.0
	declined := 0.0
	recent := 0
	cutoff30d := now.AddDate(0, 0, -30)

	for _, ra := range history {
		switch ra.Status {
		case db.AssignmentStatusAccepted:
			accepted++
		case db.AssignmentStatusCompleted:
			accepted++
			completed++
		case db.AssignmentStatusDeclined:
			declined++
		}

		if date, err := scheduling.ParseDate(ra.Game.Date); err == nil && !date.Before(cutoff30d) {
			recent++
		}
	}

	acceptanceRate := accepted / total
	completionRate := completed / total
	declineRate := declined / total

	reliability := acceptanceRate*0.6 + completionRate*0.4 - declineRate*0.3
	reliability = clamp(reliability, 0.1, 1.0)

	workloadFactor := max(0.2, 1.0-float64(recent)*0.05)

	return reliability * workloadFactor
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
