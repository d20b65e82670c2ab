package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/sportsync/refassign/pkg/db"
)

// GetAvailabilityWindows retrieves a referee's windows with dates in
// [fromDate, toDate]. Windows carrying a recurrence rule are expanded into
// one concrete window per occurrence date within the range; the stored date
// acts as the recurrence seed.
func (d *DB) GetAvailabilityWindows(ctx context.Context, refereeID, fromDate, toDate string) ([]db.AvailabilityWindow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, referee_id, window_date, start_time, end_time,
			is_available, reason, rrule
		FROM availability_window
		WHERE referee_id = $1
		  AND (rrule <> '' OR window_date BETWEEN $2 AND $3)
	`, refereeID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability windows: %w", err)
	}
	defer rows.Close()

	from, err := time.Parse("2006-01-02", fromDate)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q: %w", fromDate, err)
	}
	to, err := time.Parse("2006-01-02", toDate)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %q: %w", toDate, err)
	}

	var windows []db.AvailabilityWindow
	for rows.Next() {
		var w db.AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.RefereeID, &w.Date, &w.StartTime, &w.EndTime,
			&w.IsAvailable, &w.Reason, &w.RRule); err != nil {
			return nil, fmt.Errorf("failed to scan availability window: %w", err)
		}

		if w.RRule == "" {
			windows = append(windows, w)
			continue
		}
		windows = append(windows, expandRecurring(w, from, to)...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability windows: %w", err)
	}

	return windows, nil
}

// expandRecurring materializes a recurring window's occurrences within
// [from, to]. Rules are validated on write; a rule that no longer parses is
// skipped rather than failing the whole read.
func expandRecurring(w db.AvailabilityWindow, from, to time.Time) []db.AvailabilityWindow {
	rule, err := rrule.StrToRRule(w.RRule)
	if err != nil {
		return nil
	}

	seed, err := time.Parse("2006-01-02", w.Date)
	if err != nil {
		return nil
	}
	rule.DTStart(seed)

	var expanded []db.AvailabilityWindow
	for _, occurrence := range rule.Between(from, to.AddDate(0, 0, 1), true) {
		concrete := w
		concrete.Date = occurrence.Format("2006-01-02")
		expanded = append(expanded, concrete)
	}
	return expanded
}
