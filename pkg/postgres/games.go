package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sportsync/refassign/pkg/db"
)

const gameColumns = `id, game_date, start_time, duration_minutes, location,
	postal_code, level, home_team_id, away_team_id, refs_needed, status`

func scanGame(row pgx.Row, g *db.Game) error {
	return row.Scan(&g.ID, &g.Date, &g.StartTime, &g.DurationMinutes, &g.Location,
		&g.PostalCode, &g.Level, &g.HomeTeamID, &g.AwayTeamID, &g.RefsNeeded, &g.Status)
}

// GetGame retrieves a single game by id
func (d *DB) GetGame(ctx context.Context, id string) (*db.Game, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+gameColumns+` FROM game WHERE id = $1`, id)

	var g db.Game
	if err := scanGame(row, &g); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("game %s: %w", id, db.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query game: %w", err)
	}
	return &g, nil
}

// GetUnassignedGames retrieves all games that still need referees, ordered
// by date and start time
func (d *DB) GetUnassignedGames(ctx context.Context) ([]db.Game, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+gameColumns+`
		FROM game
		WHERE status = $1
		ORDER BY game_date, start_time
	`, db.GameStatusUnassigned)
	if err != nil {
		return nil, fmt.Errorf("failed to query unassigned games: %w", err)
	}
	defer rows.Close()

	var games []db.Game
	for rows.Next() {
		var g db.Game
		if err := scanGame(rows, &g); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}
