package scheduling

// Rules holds the conflict detection thresholds. Values are consolidated
// here so callers share one configuration instead of re-declaring the
// defaults per call site.
type Rules struct {
	// BufferMinutes is padding applied before and after a game's window
	// when testing for double-booking
	BufferMinutes int

	// AssumedGameMinutes is the duration assumed for overlap checks,
	// covering pre-game duties and overruns beyond the nominal game length
	AssumedGameMinutes int

	// MaxGamesPerDay caps assignments per referee per calendar day
	MaxGamesPerDay int

	// MaxGamesPerWeek caps assignments per referee per Monday-Sunday week
	MaxGamesPerWeek int

	// BackToBackMinutes is the minimum separation between consecutive
	// games before a travel warning is raised
	BackToBackMinutes int

	// WarnGamesPerDay is the same-day assignment count at which an
	// approaching-cap warning is raised
	WarnGamesPerDay int

	// LevelMismatchTiers is the tier gap between referee and game level at
	// which an over/under-qualified warning is raised
	LevelMismatchTiers int
}

// DefaultRules returns the standard league conflict rules
func DefaultRules() Rules {
	return Rules{
		BufferMinutes:      30,
		AssumedGameMinutes: 150,
		MaxGamesPerDay:     4,
		MaxGamesPerWeek:    15,
		BackToBackMinutes:  45,
		WarnGamesPerDay:    3,
		LevelMismatchTiers: 2,
	}
}
