package scheduling

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sportsync/refassign/pkg/db"
)

// Store is the slice of the database the detector needs
type Store interface {
	db.AssignmentStore
	db.AvailabilityStore
}

// Result is the outcome of a conflict check for one (game, referee) pair.
// Conflicts are hard rule violations that exclude the referee entirely;
// Warnings are non-blocking concerns surfaced to the caller and folded into
// the suggestion confidence penalty.
type Result struct {
	HasConflict bool
	Conflicts   []string
	Warnings    []string
}

// Detector evaluates hard scheduling conflicts and soft warnings for
// candidate (game, referee) pairs
type Detector struct {
	store  Store
	rules  Rules
	logger *zap.Logger
}

// NewDetector creates a Detector with the given rules
func NewDetector(store Store, rules Rules, logger *zap.Logger) *Detector {
	return &Detector{
		store:  store,
		rules:  rules,
		logger: logger,
	}
}

// Referee level tiers on a shared scale with game levels, used for
// over/under-qualification warnings
var refereeTiers = map[string]int{
	db.RefereeLevelRookie: 1,
	db.RefereeLevelJunior: 2,
	db.RefereeLevelSenior: 3,
	db.RefereeLevelElite:  4,
}

var gameTiers = map[string]int{
	db.GameLevelRecreational: 1,
	db.GameLevelCompetitive:  3,
	db.GameLevelElite:        4,
}

func isActive(status string) bool {
	return status == db.AssignmentStatusPending || status == db.AssignmentStatusAccepted
}

func countsTowardCap(status string) bool {
	return status == db.AssignmentStatusPending ||
		status == db.AssignmentStatusAccepted ||
		status == db.AssignmentStatusCompleted
}

// Check evaluates all hard-conflict rules and soft warnings for assigning
// the referee to the game. Position is the candidate position; pass an empty
// string to skip the position-filled check (used when building the candidate
// pool before positions are chosen).
//
// Two calls with unchanged store data return identical results.
func (d *Detector) Check(ctx context.Context, game *db.Game, referee *db.Referee, position string) (*Result, error) {
	result := &Result{
		Conflicts: []string{},
		Warnings:  []string{},
	}

	gameInterval, err := GameInterval(game)
	if err != nil {
		return nil, err
	}
	bookingInterval, err := BookingInterval(game, d.rules)
	if err != nil {
		return nil, err
	}

	// Game-level capacity checks
	gameAssignments, err := d.store.GetGameAssignments(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game assignments: %w", err)
	}

	activeCount := 0
	for _, a := range gameAssignments {
		if !isActive(a.Status) {
			continue
		}
		activeCount++
		if a.RefereeID == referee.ID {
			result.Conflicts = append(result.Conflicts, "referee is already assigned to this game")
		}
		if position != "" && a.Position == position {
			result.Conflicts = append(result.Conflicts, fmt.Sprintf("position %s is already filled", position))
		}
	}
	refsNeeded := game.RefsNeeded
	if refsNeeded <= 0 {
		refsNeeded = 1
	}
	if activeCount >= refsNeeded {
		result.Conflicts = append(result.Conflicts, "game already has its required number of referees")
	}

	// Referee schedule checks over the week containing the game
	gameDate, err := ParseDate(game.Date)
	if err != nil {
		return nil, err
	}
	weekStart, weekEnd := WeekBounds(gameDate)

	history, err := d.store.GetRefereeAssignments(ctx, referee.ID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch referee assignments: %w", err)
	}

	sameDayActive := []db.RefereeAssignment{}
	dayCount := 0
	weekCount := 0
	for _, ra := range history {
		if ra.GameID == game.ID {
			continue
		}
		if countsTowardCap(ra.Status) {
			weekCount++
			if ra.Game.Date == game.Date {
				dayCount++
			}
		}
		if !isActive(ra.Status) {
			continue
		}

		other, err := BookingInterval(&ra.Game, d.rules)
		if err != nil {
			// Malformed historical record; skip it rather than block the check
			d.logger.Warn("Skipping assignment with unparseable game time",
				zap.String("assignment_id", ra.ID),
				zap.String("game_id", ra.GameID),
				zap.Error(err))
			continue
		}
		if bookingInterval.Overlaps(other) {
			result.Conflicts = append(result.Conflicts,
				fmt.Sprintf("overlapping assignment for game %s at %s %s", ra.GameID, ra.Game.Date, ra.Game.StartTime))
		}

		if ra.Game.Date == game.Date {
			sameDayActive = append(sameDayActive, ra)
		}
	}

	if dayCount >= d.rules.MaxGamesPerDay {
		result.Conflicts = append(result.Conflicts,
			fmt.Sprintf("referee has reached the daily limit of %d games", d.rules.MaxGamesPerDay))
	}
	if weekCount >= d.rules.MaxGamesPerWeek {
		result.Conflicts = append(result.Conflicts,
			fmt.Sprintf("referee has reached the weekly limit of %d games", d.rules.MaxGamesPerWeek))
	}

	// Explicit blackout windows
	windows, err := d.store.GetAvailabilityWindows(ctx, referee.ID, game.Date, game.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability windows: %w", err)
	}
	for _, w := range windows {
		if w.IsAvailable {
			continue
		}
		blackout, err := WindowInterval(&w)
		if err != nil {
			d.logger.Warn("Skipping malformed availability window",
				zap.String("window_id", w.ID),
				zap.Error(err))
			continue
		}
		if gameInterval.Overlaps(blackout) {
			msg := "referee has declared unavailability for this time"
			if w.Reason != "" {
				msg += ": " + w.Reason
			}
			result.Conflicts = append(result.Conflicts, msg)
		}
	}

	d.collectWarnings(result, game, referee, gameInterval, sameDayActive, dayCount)

	result.HasConflict = len(result.Conflicts) > 0
	return result, nil
}

// collectWarnings appends the soft, non-blocking concerns for the pair
func (d *Detector) collectWarnings(result *Result, game *db.Game, referee *db.Referee, gameInterval Interval, sameDayActive []db.RefereeAssignment, dayCount int) {
	multiVenue := false
	for _, ra := range sameDayActive {
		other, err := GameInterval(&ra.Game)
		if err != nil {
			continue
		}
		gap := gameInterval.GapMinutes(other)
		if gap > 0 && gap < d.rules.BackToBackMinutes {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("back-to-back games with only %d minutes between them", gap))
		}
		if ra.Game.PostalCode != "" && game.PostalCode != "" && ra.Game.PostalCode != game.PostalCode {
			multiVenue = true
		}
	}
	if multiVenue {
		result.Warnings = append(result.Warnings,
			"referee has another game that day at a different venue area")
	}

	if dayCount >= d.rules.WarnGamesPerDay && dayCount < d.rules.MaxGamesPerDay {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("referee already has %d games that day", dayCount))
	}

	refTier, okRef := refereeTiers[referee.Level]
	gameTier, okGame := gameTiers[game.Level]
	if okRef && okGame {
		diff := refTier - gameTier
		if diff >= d.rules.LevelMismatchTiers {
			result.Warnings = append(result.Warnings, "referee is overqualified for this game level")
		} else if -diff >= d.rules.LevelMismatchTiers {
			result.Warnings = append(result.Warnings, "referee may be underqualified for this game level")
		}
	}
}
