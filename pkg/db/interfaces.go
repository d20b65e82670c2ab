package db

import (
	"context"
	"time"
)

// GameStore defines game read operations
type GameStore interface {
	GetGame(ctx context.Context, id string) (*Game, error)
	GetUnassignedGames(ctx context.Context) ([]Game, error)
}

// RefereeStore defines referee read operations
type RefereeStore interface {
	GetReferee(ctx context.Context, id string) (*Referee, error)
	GetAvailableReferees(ctx context.Context) ([]Referee, error)
}

// AssignmentStore defines assignment operations
type AssignmentStore interface {
	// GetGameAssignments returns all assignments for a game, any status
	GetGameAssignments(ctx context.Context, gameID string) ([]Assignment, error)

	// GetRefereeAssignments returns a referee's assignments joined with
	// their games, restricted to games dated within [fromDate, toDate]
	// (inclusive, "2006-01-02" strings)
	GetRefereeAssignments(ctx context.Context, refereeID, fromDate, toDate string) ([]RefereeAssignment, error)
}

// AvailabilityStore defines availability window operations
type AvailabilityStore interface {
	// GetAvailabilityWindows returns a referee's windows with dates in
	// [fromDate, toDate], expanding recurring windows into concrete dates
	GetAvailabilityWindows(ctx context.Context, refereeID, fromDate, toDate string) ([]AvailabilityWindow, error)
}

// SuggestionStore defines suggestion lifecycle operations
type SuggestionStore interface {
	InsertSuggestions(ctx context.Context, suggestions []Suggestion) error
	GetSuggestion(ctx context.Context, id string) (*Suggestion, error)

	// AcceptSuggestion atomically marks the suggestion accepted and inserts
	// the assignment. The insert is conditional: it fails with ErrConflict
	// if the game already has an active assignment for the same position or
	// has reached its required referee count. The suggestion must still be
	// pending.
	AcceptSuggestion(ctx context.Context, id, processedBy string, assignment *Assignment) error

	// RejectSuggestion marks a pending suggestion rejected with an optional reason
	RejectSuggestion(ctx context.Context, id, processedBy, reason string) error

	// ExpireSuggestions marks pending suggestions created before the cutoff
	// as expired and returns how many were updated
	ExpireSuggestions(ctx context.Context, cutoff time.Time) (int64, error)
}

// Database defines the interface for all database operations.
// Implemented by postgres.DB and by test fakes.
type Database interface {
	GameStore
	RefereeStore
	AssignmentStore
	AvailabilityStore
	SuggestionStore
}
