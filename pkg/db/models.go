package db

import "time"

// Game levels
const (
	GameLevelRecreational = "Recreational"
	GameLevelCompetitive  = "Competitive"
	GameLevelElite        = "Elite"
)

// Referee levels
const (
	RefereeLevelRookie = "Rookie"
	RefereeLevelJunior = "Junior"
	RefereeLevelSenior = "Senior"
	RefereeLevelElite  = "Elite"
)

// Game statuses
const (
	GameStatusUnassigned = "unassigned"
	GameStatusAssigned   = "assigned"
	GameStatusCompleted  = "completed"
)

// Assignment statuses
const (
	AssignmentStatusPending   = "pending"
	AssignmentStatusAccepted  = "accepted"
	AssignmentStatusDeclined  = "declined"
	AssignmentStatusCompleted = "completed"
)

// Suggestion statuses
const (
	SuggestionStatusPending  = "pending"
	SuggestionStatusAccepted = "accepted"
	SuggestionStatusRejected = "rejected"
	SuggestionStatusExpired  = "expired"
)

// Availability strategies
const (
	StrategyWhitelist = "WHITELIST"
	StrategyBlacklist = "BLACKLIST"
)

// Game represents a scheduled game that needs referees.
// Dates and times are stored as wall-clock strings ("2006-01-02" and "15:04")
// with no timezone attached; all scheduling arithmetic treats them as naive
// local times. This mirrors how game times are entered upstream.
type Game struct {
	ID              string
	Date            string
	StartTime       string
	DurationMinutes int
	Location        string
	PostalCode      string
	Level           string
	HomeTeamID      string
	AwayTeamID      string
	RefsNeeded      int
	Status          string
}

// Referee represents an official who can be assigned to games
type Referee struct {
	ID                   string
	Name                 string
	Email                string
	PostalCode           string
	Level                string
	IsAvailable          bool
	AvailabilityStrategy string
}

// Assignment links a referee to a game in a specific position
type Assignment struct {
	ID             string
	GameID         string
	RefereeID      string
	Position       string
	Status         string
	CalculatedWage float64
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RefereeAssignment is an assignment joined with its game, as returned by
// history queries. The game carries the time and venue data the conflict
// detector and scorer need.
type RefereeAssignment struct {
	Assignment
	Game Game
}

// AvailabilityWindow is a referee-declared interval marking explicit
// availability (IsAvailable=true) or a blackout (IsAvailable=false) on a date.
// RRule optionally holds an RFC 5545 recurrence rule; recurring windows are
// expanded into concrete dates when queried over a range.
type AvailabilityWindow struct {
	ID          string
	RefereeID   string
	Date        string
	StartTime   string
	EndTime     string
	IsAvailable bool
	Reason      string
	RRule       string
}

// Suggestion is a persisted, time-limited recommendation to assign a
// specific referee to a specific game
type Suggestion struct {
	ID                string
	GameID            string
	RefereeID         string
	Position          string
	Confidence        float64
	ProximityScore    float64
	AvailabilityScore float64
	ExperienceScore   float64
	PerformanceScore  float64
	HistoricalBonus   float64
	Warnings          []string
	Reasoning         string
	Status            string
	RejectionReason   string
	CreatedBy         string
	ProcessedBy       string
	CreatedAt         time.Time
	ProcessedAt       *time.Time
}
