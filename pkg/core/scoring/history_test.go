package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sportsync/refassign/pkg/db"
)

func targetGame() *db.Game {
	// 2024-06-01 is a Saturday
	return &db.Game{
		ID:         "g1",
		Date:       "2024-06-01",
		StartTime:  "10:00",
		Location:   "Rink A",
		HomeTeamID: "t1",
		AwayTeamID: "t2",
	}
}

func completedAt(location, date, start, home, away string) db.RefereeAssignment {
	return db.RefereeAssignment{
		Assignment: db.Assignment{RefereeID: "r1", Status: db.AssignmentStatusCompleted},
		Game: db.Game{
			Date:       date,
			StartTime:  start,
			Location:   location,
			HomeTeamID: home,
			AwayTeamID: away,
		},
	}
}

func TestHistoricalBonus_NoHistory(t *testing.T) {
	assert.Equal(t, 0.0, HistoricalBonus(nil, targetGame()))
}

func TestHistoricalBonus_VenueFamiliarity(t *testing.T) {
	// One prior game at the venue, on a different weekday and hour
	history := []db.RefereeAssignment{
		completedAt("Rink A", "2024-05-01", "14:00", "t8", "t9"),
	}
	assert.InDelta(t, 0.1, HistoricalBonus(history, targetGame()), 1e-9)

	// Three or more prior games earn the full venue bonus
	history = append(history,
		completedAt("Rink A", "2024-05-08", "14:00", "t8", "t9"),
		completedAt("Rink A", "2024-05-15", "14:00", "t8", "t9"),
	)
	assert.InDelta(t, 0.3, HistoricalBonus(history, targetGame()), 1e-9)
}

func TestHistoricalBonus_TeamFamiliarity(t *testing.T) {
	history := []db.RefereeAssignment{
		completedAt("Rink B", "2024-05-01", "14:00", "t1", "t9"),
	}
	assert.InDelta(t, 0.1, HistoricalBonus(history, targetGame()), 1e-9)

	history = append(history, completedAt("Rink B", "2024-05-08", "14:00", "t9", "t2"))
	assert.InDelta(t, 0.2, HistoricalBonus(history, targetGame()), 1e-9)
}

func TestHistoricalBonus_TimeSlotFamiliarity(t *testing.T) {
	// Saturdays at 10, different venue and teams
	history := []db.RefereeAssignment{
		completedAt("Rink B", "2024-05-04", "10:15", "t8", "t9"),
		completedAt("Rink B", "2024-05-11", "10:30", "t8", "t9"),
		completedAt("Rink B", "2024-05-18", "10:00", "t8", "t9"),
	}
	assert.InDelta(t, 0.2, HistoricalBonus(history, targetGame()), 1e-9)
}

func TestHistoricalBonus_PatternsAreAdditive(t *testing.T) {
	// Same venue, same home team, same Saturday-at-10 slot, three times over
	history := []db.RefereeAssignment{
		completedAt("Rink A", "2024-05-04", "10:00", "t1", "t9"),
		completedAt("Rink A", "2024-05-11", "10:00", "t1", "t9"),
		completedAt("Rink A", "2024-05-18", "10:00", "t1", "t9"),
	}
	assert.InDelta(t, 0.7, HistoricalBonus(history, targetGame()), 1e-9)
}

func TestHistoricalBonus_OnlyCompletedCounts(t *testing.T) {
	history := []db.RefereeAssignment{
		{
			Assignment: db.Assignment{RefereeID: "r1", Status: db.AssignmentStatusDeclined},
			Game:       db.Game{Date: "2024-05-01", StartTime: "14:00", Location: "Rink A"},
		},
		{
			Assignment: db.Assignment{RefereeID: "r1", Status: db.AssignmentStatusPending},
			Game:       db.Game{Date: "2024-05-08", StartTime: "14:00", Location: "Rink A"},
		},
	}
	assert.Equal(t, 0.0, HistoricalBonus(history, targetGame()))
}
