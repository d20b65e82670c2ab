package scoring

import (
	"github.com/sportsync/refassign/pkg/db"
	"github.com/sportsync/refassign/pkg/core/scheduling"
)

// AvailabilityScore rates how well a referee's declared windows fit the
// game time:
//   - an explicit available window covering the whole game scores 1.0
//   - a blackout overlapping the game scores 0.2
//   - a blacklist-strategy referee with no overlapping blackout scores 0.8
//     (absence of a blackout means available)
//   - otherwise the neutral default applies (no windows declared, or
//     whitelist windows that do not cover the game)
func AvailabilityScore(windows []db.AvailabilityWindow, game *db.Game, strategy string, defaults Defaults) (float64, error) {
	gameInterval, err := scheduling.GameInterval(game)
	if err != nil {
		return 0, err
	}

	covered := false
	blackoutOverlap := false
	for _, w := range windows {
		interval, err := scheduling.WindowInterval(&w)
		if err != nil {
			// Malformed window; ignore it rather than fail the sub-score
			continue
		}
		if w.IsAvailable {
			if !interval.Start.After(gameInterval.Start) && !interval.End.Before(gameInterval.End) {
				covered = true
			}
		} else if interval.Overlaps(gameInterval) {
			blackoutOverlap = true
		}
	}

	switch {
	case covered:
		return 1.0, nil
	case blackoutOverlap:
		return 0.2, nil
	case strategy == db.StrategyBlacklist:
		return 0.8, nil
	default:
		return defaults.Availability, nil
	}
}
