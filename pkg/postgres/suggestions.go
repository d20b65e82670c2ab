package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sportsync/refassign/pkg/db"
)

// InsertSuggestions persists a batch of suggestions in one transaction
func (d *DB) InsertSuggestions(ctx context.Context, suggestions []db.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range suggestions {
		_, err := tx.Exec(ctx, `
			INSERT INTO suggestion (id, game_id, referee_id, position, confidence,
				proximity_score, availability_score, experience_score,
				performance_score, historical_bonus, warnings, reasoning,
				status, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, s.ID, s.GameID, s.RefereeID, s.Position, s.Confidence,
			s.ProximityScore, s.AvailabilityScore, s.ExperienceScore,
			s.PerformanceScore, s.HistoricalBonus, s.Warnings, s.Reasoning,
			s.Status, s.CreatedBy, s.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert suggestion: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetSuggestion retrieves a single suggestion by id
func (d *DB) GetSuggestion(ctx context.Context, id string) (*db.Suggestion, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, game_id, referee_id, position, confidence,
			proximity_score, availability_score, experience_score,
			performance_score, historical_bonus, warnings, reasoning,
			status, rejection_reason, created_by, processed_by,
			created_at, processed_at
		FROM suggestion
		WHERE id = $1
	`, id)

	var s db.Suggestion
	err := row.Scan(&s.ID, &s.GameID, &s.RefereeID, &s.Position, &s.Confidence,
		&s.ProximityScore, &s.AvailabilityScore, &s.ExperienceScore,
		&s.PerformanceScore, &s.HistoricalBonus, &s.Warnings, &s.Reasoning,
		&s.Status, &s.RejectionReason, &s.CreatedBy, &s.ProcessedBy,
		&s.CreatedAt, &s.ProcessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("suggestion %s: %w", id, db.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query suggestion: %w", err)
	}
	return &s, nil
}

// AcceptSuggestion atomically marks the suggestion accepted and inserts the
// assignment. The game row is locked for the duration of the transaction so
// concurrent acceptances for the same game serialize; the partial unique
// index on (game_id, position) backstops the position check.
func (d *DB) AcceptSuggestion(ctx context.Context, id, processedBy string, assignment *db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE suggestion
		SET status = $1, processed_by = $2, processed_at = NOW()
		WHERE id = $3 AND status = $4
	`, db.SuggestionStatusAccepted, processedBy, id, db.SuggestionStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update suggestion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var status string
		err := tx.QueryRow(ctx, `SELECT status FROM suggestion WHERE id = $1`, id).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("suggestion %s: %w", id, db.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to query suggestion status: %w", err)
		}
		return fmt.Errorf("suggestion is %s: %w", status, db.ErrConflict)
	}

	// Lock the game row to serialize acceptances per game
	var refsNeeded int
	err = tx.QueryRow(ctx, `SELECT refs_needed FROM game WHERE id = $1 FOR UPDATE`,
		assignment.GameID).Scan(&refsNeeded)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("game %s: %w", assignment.GameID, db.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock game: %w", err)
	}
	if refsNeeded <= 0 {
		refsNeeded = 1
	}

	var active int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM assignment
		WHERE game_id = $1 AND status IN ($2, $3)
	`, assignment.GameID, db.AssignmentStatusPending, db.AssignmentStatusAccepted).Scan(&active)
	if err != nil {
		return fmt.Errorf("failed to count active assignments: %w", err)
	}
	if active >= refsNeeded {
		return fmt.Errorf("game %s already has its required referees: %w", assignment.GameID, db.ErrConflict)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO assignment (id, game_id, referee_id, position, status,
			calculated_wage, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, assignment.ID, assignment.GameID, assignment.RefereeID, assignment.Position,
		assignment.Status, assignment.CalculatedWage, assignment.CreatedBy,
		assignment.CreatedAt, assignment.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("position %s already filled for game %s: %w",
				assignment.Position, assignment.GameID, db.ErrConflict)
		}
		return fmt.Errorf("failed to insert assignment: %w", err)
	}

	if active+1 >= refsNeeded {
		_, err = tx.Exec(ctx, `UPDATE game SET status = $1 WHERE id = $2`,
			db.GameStatusAssigned, assignment.GameID)
		if err != nil {
			return fmt.Errorf("failed to update game status: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RejectSuggestion marks a pending suggestion rejected with an optional reason
func (d *DB) RejectSuggestion(ctx context.Context, id, processedBy, reason string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE suggestion
		SET status = $1, processed_by = $2, rejection_reason = $3, processed_at = NOW()
		WHERE id = $4 AND status = $5
	`, db.SuggestionStatusRejected, processedBy, reason, id, db.SuggestionStatusPending)
	if err != nil {
		return fmt.Errorf("failed to reject suggestion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var status string
		err := d.pool.QueryRow(ctx, `SELECT status FROM suggestion WHERE id = $1`, id).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("suggestion %s: %w", id, db.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to query suggestion status: %w", err)
		}
		return fmt.Errorf("suggestion is %s: %w", status, db.ErrConflict)
	}
	return nil
}

// ExpireSuggestions marks pending suggestions created before the cutoff as
// expired and returns how many were updated
func (d *DB) ExpireSuggestions(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := d.pool.Exec(ctx, `
		UPDATE suggestion
		SET status = $1, processed_at = NOW()
		WHERE status = $2 AND created_at < $3
	`, db.SuggestionStatusExpired, db.SuggestionStatusPending, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to expire suggestions: %w", err)
	}
	return tag.RowsAffected(), nil
}
