package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sportsync/refassign/pkg/db"
)

// fakeStore serves canned windows and history, or fails every query when
// err is set
type fakeStore struct {
	windows []db.AvailabilityWindow
	history []db.RefereeAssignment
	err     error
}

func (f *fakeStore) GetGameAssignments(ctx context.Context, gameID string) ([]db.Assignment, error) {
	return nil, f.err
}

func (f *fakeStore) GetRefereeAssignments(ctx context.Context, refereeID, fromDate, toDate string) ([]db.RefereeAssignment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []db.RefereeAssignment
	for _, ra := range f.history {
		if ra.Game.Date >= fromDate && ra.Game.Date <= toDate {
			out = append(out, ra)
		}
	}
	return out, nil
}

func (f *fakeStore) GetAvailabilityWindows(ctx context.Context, refereeID, fromDate, toDate string) ([]db.AvailabilityWindow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.windows, nil
}

func newTestScorer(store *fakeStore) *Scorer {
	s := NewScorer(store, DefaultDefaults(), zap.NewNop())
	s.now = func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestScore_NoData(t *testing.T) {
	scorer := newTestScorer(&fakeStore{})
	game := &db.Game{ID: "g1", Date: "2024-06-20", StartTime: "10:00", PostalCode: "T2N 0A1", Level: db.GameLevelCompetitive}
	referee := &db.Referee{ID: "r1", PostalCode: "T2N 1N4", Level: db.RefereeLevelSenior, AvailabilityStrategy: db.StrategyWhitelist}

	got := scorer.Score(context.Background(), game, referee)

	assert.Equal(t, 0.95, got.Proximity)
	assert.Equal(t, 0.7, got.Availability)
	assert.Equal(t, 0.9, got.Experience)
	assert.Equal(t, 0.6, got.Performance)
	assert.Equal(t, 0.0, got.HistoricalBonus)
}

func TestScore_UsesWindowsAndHistory(t *testing.T) {
	store := &fakeStore{
		windows: []db.AvailabilityWindow{
			{ID: "w1", RefereeID: "r1", Date: "2024-06-20", StartTime: "08:00", EndTime: "14:00", IsAvailable: true},
		},
		history: []db.RefereeAssignment{
			{
				Assignment: db.Assignment{RefereeID: "r1", Status: db.AssignmentStatusCompleted},
				Game:       db.Game{Date: "2024-04-01", StartTime: "14:00", Location: "Rink A"},
			},
		},
	}
	scorer := newTestScorer(store)
	game := &db.Game{ID: "g1", Date: "2024-06-20", StartTime: "10:00", Location: "Rink A", Level: db.GameLevelCompetitive}
	referee := &db.Referee{ID: "r1", Level: db.RefereeLevelSenior, AvailabilityStrategy: db.StrategyWhitelist}

	got := scorer.Score(context.Background(), game, referee)

	assert.Equal(t, 1.0, got.Availability)
	assert.InDelta(t, 1.0, got.Performance, 1e-9)
	assert.InDelta(t, 0.1, got.HistoricalBonus, 1e-9)
}

func TestScore_StoreFailureDegradesToDefaults(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	scorer := newTestScorer(store)
	game := &db.Game{ID: "g1", Date: "2024-06-20", StartTime: "10:00", PostalCode: "T2N 0A1", Level: db.GameLevelCompetitive}
	referee := &db.Referee{ID: "r1", PostalCode: "T2N 1N4", Level: db.RefereeLevelSenior, AvailabilityStrategy: db.StrategyWhitelist}

	got := scorer.Score(context.Background(), game, referee)

	// Data-free sub-scores are unaffected, the rest fall back to neutral
	assert.Equal(t, 0.95, got.Proximity)
	assert.Equal(t, 0.9, got.Experience)
	assert.Equal(t, 0.7, got.Availability)
	assert.Equal(t, 0.6, got.Performance)
	assert.Equal(t, 0.0, got.HistoricalBonus)
}
