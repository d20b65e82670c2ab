package scoring

import (
	"github.com/sportsync/refassign/pkg/core/scheduling"
	"github.com/sportsync/refassign/pkg/db"
)

// HistoricalBonus rewards referees whose completed assignments show a
// pattern matching the target game: the same venue, the same teams, or the
// same weekly time slot. The bonus is additive across the three patterns
// and capped at 1.0 before the ranker scales it into the confidence.
func HistoricalBonus(history []db.RefereeAssignment, game *db.Game) float64 {
	gameStart, startErr := scheduling.ParseStart(game.Date, game.StartTime)

	venueCount := 0
	teamCount := 0
	slotCount := 0
	for _, ra := range history {
		if ra.Status != db.AssignmentStatusCompleted {
			continue
		}

		if ra.Game.Location != "" && ra.Game.Location == game.Location {
			venueCount++
		}

		if involvesTeam(&ra.Game, game.HomeTeamID) || involvesTeam(&ra.Game, game.AwayTeamID) {
			teamCount++
		}

		if startErr == nil {
			if other, err := scheduling.ParseStart(ra.Game.Date, ra.Game.StartTime); err == nil {
				if other.Weekday() == gameStart.Weekday() && other.Hour() == gameStart.Hour() {
					slotCount++
				}
			}
		}
	}

	bonus := 0.0
	switch {
	case venueCount >= 3:
		bonus += 0.3
	case venueCount >= 1:
		bonus += 0.1
	}
	switch {
	case teamCount >= 2:
		bonus += 0.2
	case teamCount >= 1:
		bonus += 0.1
	}
	switch {
	case slotCount >= 3:
		bonus += 0.2
	case slotCount >= 1:
		bonus += 0.1
	}

	return min(bonus, 1.0)
}

func involvesTeam(game *db.Game, teamID string) bool {
	if teamID == "" {
		return false
	}
	return game.HomeTeamID == teamID || game.AwayTeamID == teamID
}
