package scheduling

import (
	"fmt"
	"time"

	"github.com/sportsync/refassign/pkg/db"
)

// DefaultGameMinutes is the nominal game length used when a game has no
// explicit duration
const DefaultGameMinutes = 120

// Interval is a half-open time interval [Start, End).
// Game times are stored as wall-clock strings with no timezone; intervals
// built from them use a fixed placeholder zone so that all comparisons stay
// within one timezone-naive representation. No timezone conversion happens
// anywhere in the system, so games in different timezones are compared as if
// local clocks agreed. Known limitation carried over from how game times are
// entered upstream.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// GapMinutes returns the separation between two non-overlapping intervals
// in minutes. Returns 0 if the intervals overlap or touch.
func (i Interval) GapMinutes(other Interval) int {
	if i.Overlaps(other) {
		return 0
	}
	var gap time.Duration
	if i.End.After(other.Start) {
		gap = i.Start.Sub(other.End)
	} else {
		gap = other.Start.Sub(i.End)
	}
	if gap < 0 {
		gap = 0
	}
	return int(gap.Minutes())
}

// ParseDate parses a wall-clock date string ("2006-01-02") into the naive
// representation used for all scheduling arithmetic
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// ParseStart parses a game's date and start time into a naive timestamp
func ParseStart(date, startTime string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", date+" "+startTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid game time %q %q: %w", date, startTime, err)
	}
	return t, nil
}

// GameInterval returns the game's nominal playing window using its stored
// duration, or DefaultGameMinutes when unset
func GameInterval(game *db.Game) (Interval, error) {
	start, err := ParseStart(game.Date, game.StartTime)
	if err != nil {
		return Interval{}, err
	}
	minutes := game.DurationMinutes
	if minutes <= 0 {
		minutes = DefaultGameMinutes
	}
	return Interval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}, nil
}

// BookingInterval returns the window a game occupies for double-booking
// checks: the assumed duration padded by the buffer on both sides
func BookingInterval(game *db.Game, rules Rules) (Interval, error) {
	start, err := ParseStart(game.Date, game.StartTime)
	if err != nil {
		return Interval{}, err
	}
	buffer := time.Duration(rules.BufferMinutes) * time.Minute
	assumed := time.Duration(rules.AssumedGameMinutes) * time.Minute
	return Interval{Start: start.Add(-buffer), End: start.Add(assumed + buffer)}, nil
}

// WindowInterval returns the interval covered by an availability window on
// its concrete date
func WindowInterval(w *db.AvailabilityWindow) (Interval, error) {
	start, err := ParseStart(w.Date, w.StartTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseStart(w.Date, w.EndTime)
	if err != nil {
		return Interval{}, err
	}
	if !end.After(start) {
		return Interval{}, fmt.Errorf("availability window %s ends before it starts", w.ID)
	}
	return Interval{Start: start, End: end}, nil
}

// WeekBounds returns the Monday and Sunday dates of the week containing the
// given date, formatted as wall-clock date strings
func WeekBounds(date time.Time) (string, string) {
	offset := (int(date.Weekday()) + 6) % 7
	monday := date.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format("2006-01-02"), sunday.Format("2006-01-02")
}
