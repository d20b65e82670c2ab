package scoring

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sportsync/refassign/pkg/db"
)

// Defaults holds the neutral fallback values used when a sub-score has no
// data to work with or its store query fails. Scoring is total: every
// sub-score always produces a value.
type Defaults struct {
	// Proximity is used when either postal code is missing
	Proximity float64

	// Availability is used when a referee has declared no windows (and when
	// whitelist windows exist but none covers the game)
	Availability float64

	// Experience is the base for referees with an unrecognized level
	Experience float64

	// NoHistoryPerformance is the performance score for referees with no
	// assignment history. Earlier scorer generations used 0.5; the shipped
	// default is 0.6 and the value is configurable so leagues can choose.
	NoHistoryPerformance float64
}

// DefaultDefaults returns the standard neutral fallbacks
func DefaultDefaults() Defaults {
	return Defaults{
		Proximity:            0.5,
		Availability:         0.7,
		Experience:           0.5,
		NoHistoryPerformance: 0.6,
	}
}

// Store is the slice of the database the scorer needs
type Store interface {
	db.AssignmentStore
	db.AvailabilityStore
}

// Breakdown holds the component sub-scores for one (game, referee) pair.
// All components are in [0, 1].
type Breakdown struct {
	Proximity       float64
	Availability    float64
	Experience      float64
	Performance     float64
	HistoricalBonus float64
}

// Scorer computes soft suitability sub-scores for non-conflicting
// (game, referee) pairs
type Scorer struct {
	store    Store
	defaults Defaults
	logger   *zap.Logger
	now      func() time.Time
}

// NewScorer creates a Scorer with the given fallback defaults
func NewScorer(store Store, defaults Defaults, logger *zap.Logger) *Scorer {
	return &Scorer{
		store:    store,
		defaults: defaults,
		logger:   logger,
		now:      time.Now,
	}
}

// Score computes the full sub-score breakdown for the pair. Each sub-score
// is fail-soft: a store failure degrades that sub-score to its neutral
// default instead of aborting the pair, so a partial outage still yields a
// usable (if less informed) suggestion.
func (s *Scorer) Score(ctx context.Context, game *db.Game, referee *db.Referee) Breakdown {
	now := s.now()

	breakdown := Breakdown{
		Proximity:  ProximityScore(referee.PostalCode, game.PostalCode, s.defaults),
		Experience: ExperienceScore(referee.Level, game.Level, s.defaults),
	}

	breakdown.Availability = s.resolve(game, referee, "availability", s.defaults.Availability, func() (float64, error) {
		windows, err := s.store.GetAvailabilityWindows(ctx, referee.ID, game.Date, game.Date)
		if err != nil {
			return 0, err
		}
		return AvailabilityScore(windows, game, referee.AvailabilityStrategy, s.defaults)
	})

	breakdown.Performance = s.resolve(game, referee, "performance", s.defaults.NoHistoryPerformance, func() (float64, error) {
		history, err := s.refereeHistory(ctx, referee.ID, now, 6)
		if err != nil {
			return 0, err
		}
		return PerformanceScore(history, now, s.defaults), nil
	})

	breakdown.HistoricalBonus = s.resolve(game, referee, "historical_bonus", 0, func() (float64, error) {
		history, err := s.refereeHistory(ctx, referee.ID, now, 12)
		if err != nil {
			return 0, err
		}
		return HistoricalBonus(history, game), nil
	})

	return breakdown
}

// refereeHistory fetches the referee's assignments over the trailing number
// of months
func (s *Scorer) refereeHistory(ctx context.Context, refereeID string, now time.Time, months int) ([]db.RefereeAssignment, error) {
	from := now.AddDate(0, -months, 0).Format("2006-01-02")
	to := now.Format("2006-01-02")
	return s.store.GetRefereeAssignments(ctx, refereeID, from, to)
}

// resolve runs one sub-score computation and falls back to the neutral
// default on error
func (s *Scorer) resolve(game *db.Game, referee *db.Referee, name string, fallback float64, fn func() (float64, error)) float64 {
	value, err := fn()
	if err != nil {
		s.logger.Warn("Sub-score computation failed, using neutral default",
			zap.String("sub_score", name),
			zap.String("game_id", game.ID),
			zap.String("referee_id", referee.ID),
			zap.Float64("default", fallback),
			zap.Error(err))
		return fallback
	}
	return value
}
