package postgres

import (
	"context"
	"fmt"

	"github.com/sportsync/refassign/pkg/db"
)

// GetGameAssignments retrieves all assignments for a game, any status
func (d *DB) GetGameAssignments(ctx context.Context, gameID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, game_id, referee_id, position, status, calculated_wage,
			created_by, created_at, updated_at
		FROM assignment
		WHERE game_id = $1
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		if err := rows.Scan(&a.ID, &a.GameID, &a.RefereeID, &a.Position, &a.Status,
			&a.CalculatedWage, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// GetRefereeAssignments retrieves a referee's assignments joined with their
// games, restricted to games dated within [fromDate, toDate]
func (d *DB) GetRefereeAssignments(ctx context.Context, refereeID, fromDate, toDate string) ([]db.RefereeAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.id, a.game_id, a.referee_id, a.position, a.status,
			a.calculated_wage, a.created_by, a.created_at, a.updated_at,
			g.id, g.game_date, g.start_time, g.duration_minutes, g.location,
			g.postal_code, g.level, g.home_team_id, g.away_team_id,
			g.refs_needed, g.status
		FROM assignment a
		JOIN game g ON g.id = a.game_id
		WHERE a.referee_id = $1
		  AND g.game_date BETWEEN $2 AND $3
		ORDER BY g.game_date, g.start_time
	`, refereeID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query referee assignments: %w", err)
	}
	defer rows.Close()

	var result []db.RefereeAssignment
	for rows.Next() {
		var ra db.RefereeAssignment
		if err := rows.Scan(&ra.ID, &ra.GameID, &ra.RefereeID, &ra.Position, &ra.Status,
			&ra.CalculatedWage, &ra.CreatedBy, &ra.CreatedAt, &ra.UpdatedAt,
			&ra.Game.ID, &ra.Game.Date, &ra.Game.StartTime, &ra.Game.DurationMinutes,
			&ra.Game.Location, &ra.Game.PostalCode, &ra.Game.Level, &ra.Game.HomeTeamID,
			&ra.Game.AwayTeamID, &ra.Game.RefsNeeded, &ra.Game.Status); err != nil {
			return nil, fmt.Errorf("failed to scan referee assignment: %w", err)
		}
		result = append(result, ra)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating referee assignments: %w", err)
	}

	return result, nil
}
