package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sportsync/refassign/pkg/db"
)

const refereeColumns = `id, name, email, postal_code, level, is_available, availability_strategy`

func scanReferee(row pgx.Row, r *db.Referee) error {
	return row.Scan(&r.ID, &r.Name, &r.Email, &r.PostalCode, &r.Level,
		&r.IsAvailable, &r.AvailabilityStrategy)
}

// GetReferee retrieves a single referee by id
func (d *DB) GetReferee(ctx context.Context, id string) (*db.Referee, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+refereeColumns+` FROM referee WHERE id = $1`, id)

	var r db.Referee
	if err := scanReferee(row, &r); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("referee %s: %w", id, db.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query referee: %w", err)
	}
	return &r, nil
}

// GetAvailableReferees retrieves all referees whose availability flag is set
func (d *DB) GetAvailableReferees(ctx context.Context) ([]db.Referee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+refereeColumns+`
		FROM referee
		WHERE is_available
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query referees: %w", err)
	}
	defer rows.Close()

	var referees []db.Referee
	for rows.Next() {
		var r db.Referee
		if err := scanReferee(rows, &r); err != nil {
			return nil, fmt.Errorf("failed to scan referee: %w", err)
		}
		referees = append(referees, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating referees: %w", err)
	}

	return referees, nil
}
