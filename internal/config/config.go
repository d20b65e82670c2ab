package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sportsync/refassign/pkg/core/scheduling"
	"github.com/sportsync/refassign/pkg/core/scoring"
	"github.com/sportsync/refassign/pkg/core/suggest"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// WeightsConfig holds the confidence factor weights
type WeightsConfig struct {
	Proximity    float64 `yaml:"proximity" validate:"min=0,max=1"`
	Availability float64 `yaml:"availability" validate:"min=0,max=1"`
	Experience   float64 `yaml:"experience" validate:"min=0,max=1"`
	Performance  float64 `yaml:"performance" validate:"min=0,max=1"`
}

// ConflictRulesConfig holds the conflict detector thresholds
type ConflictRulesConfig struct {
	BufferMinutes      int `yaml:"bufferMinutes" validate:"min=0"`
	AssumedGameMinutes int `yaml:"assumedGameMinutes" validate:"min=1"`
	MaxGamesPerDay     int `yaml:"maxGamesPerDay" validate:"min=1"`
	MaxGamesPerWeek    int `yaml:"maxGamesPerWeek" validate:"min=1"`
	BackToBackMinutes  int `yaml:"backToBackMinutes" validate:"min=0"`
	WarnGamesPerDay    int `yaml:"warnGamesPerDay" validate:"min=1"`
	LevelMismatchTiers int `yaml:"levelMismatchTiers" validate:"min=1"`
}

// RankingConfig holds the ranker thresholds and suggestion TTL
type RankingConfig struct {
	MinConfidence        float64 `yaml:"minConfidence" validate:"min=0,max=1"`
	TieBreak             float64 `yaml:"tieBreak" validate:"min=0,max=1"`
	WarningPenalty       float64 `yaml:"warningPenalty" validate:"min=0,max=1"`
	PenaltyFloor         float64 `yaml:"penaltyFloor" validate:"min=0,max=1"`
	HistoricalWeight     float64 `yaml:"historicalWeight" validate:"min=0,max=1"`
	SuggestionTTLMinutes int     `yaml:"suggestionTTLMinutes" validate:"min=1"`
}

// ScoringConfig holds the neutral fallback values for sub-scores
type ScoringConfig struct {
	ProximityDefault     float64 `yaml:"proximityDefault" validate:"min=0,max=1"`
	AvailabilityDefault  float64 `yaml:"availabilityDefault" validate:"min=0,max=1"`
	ExperienceDefault    float64 `yaml:"experienceDefault" validate:"min=0,max=1"`
	NoHistoryPerformance float64 `yaml:"noHistoryPerformance" validate:"min=0,max=1"`
}

// NotificationsConfig controls acceptance emails to referees
type NotificationsConfig struct {
	Enabled     bool   `yaml:"enabled"`
	GmailSender string `yaml:"gmailSender" validate:"omitempty,email"`
}

// ServerConfig holds the HTTP API settings for the serve command
type ServerConfig struct {
	ListenAddr string `yaml:"listenAddr" validate:"required"`
}

// Config represents the application configuration. All scoring and conflict
// knobs live here so every component is tuned from one injected object.
type Config struct {
	DatabaseURL   string              `yaml:"databaseURL" validate:"required"`
	Server        ServerConfig        `yaml:"server"`
	Weights       WeightsConfig       `yaml:"weights"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	ConflictRules ConflictRulesConfig `yaml:"conflictRules"`
	Ranking       RankingConfig       `yaml:"ranking"`
	Wages         map[string]float64  `yaml:"wages" validate:"omitempty,dive,min=0"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

// Default returns a Config populated with the standard league settings.
// Load overlays the YAML file onto this, so absent keys keep their defaults.
func Default() *Config {
	weights := suggest.DefaultWeights()
	thresholds := suggest.DefaultThresholds()
	rules := scheduling.DefaultRules()
	defaults := scoring.DefaultDefaults()

	return &Config{
		Server: ServerConfig{ListenAddr: ":8080"},
		Weights: WeightsConfig{
			Proximity:    weights.Proximity,
			Availability: weights.Availability,
			Experience:   weights.Experience,
			Performance:  weights.Performance,
		},
		Scoring: ScoringConfig{
			ProximityDefault:     defaults.Proximity,
			AvailabilityDefault:  defaults.Availability,
			ExperienceDefault:    defaults.Experience,
			NoHistoryPerformance: defaults.NoHistoryPerformance,
		},
		ConflictRules: ConflictRulesConfig{
			BufferMinutes:      rules.BufferMinutes,
			AssumedGameMinutes: rules.AssumedGameMinutes,
			MaxGamesPerDay:     rules.MaxGamesPerDay,
			MaxGamesPerWeek:    rules.MaxGamesPerWeek,
			BackToBackMinutes:  rules.BackToBackMinutes,
			WarnGamesPerDay:    rules.WarnGamesPerDay,
			LevelMismatchTiers: rules.LevelMismatchTiers,
		},
		Ranking: RankingConfig{
			MinConfidence:        thresholds.MinConfidence,
			TieBreak:             thresholds.TieBreak,
			WarningPenalty:       thresholds.WarningPenalty,
			PenaltyFloor:         thresholds.PenaltyFloor,
			HistoricalWeight:     thresholds.HistoricalWeight,
			SuggestionTTLMinutes: int(thresholds.TTL.Minutes()),
		},
		Wages: suggest.DefaultWages(),
	}
}

// LoadWithEnv loads and validates the configuration for the given
// environment. It looks for refassign.<env>.yaml, then refassign.yaml, in
// the current directory and the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	path, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(path)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// SuggestWeights converts the configured weights to the core type
func (c *Config) SuggestWeights() suggest.Weights {
	return suggest.Weights{
		Proximity:    c.Weights.Proximity,
		Availability: c.Weights.Availability,
		Experience:   c.Weights.Experience,
		Performance:  c.Weights.Performance,
	}
}

// SuggestThresholds converts the configured ranking knobs to the core type
func (c *Config) SuggestThresholds() suggest.Thresholds {
	return suggest.Thresholds{
		MinConfidence:    c.Ranking.MinConfidence,
		TieBreak:         c.Ranking.TieBreak,
		WarningPenalty:   c.Ranking.WarningPenalty,
		PenaltyFloor:     c.Ranking.PenaltyFloor,
		HistoricalWeight: c.Ranking.HistoricalWeight,
		TTL:              time.Duration(c.Ranking.SuggestionTTLMinutes) * time.Minute,
	}
}

// SchedulingRules converts the configured conflict knobs to the core type
func (c *Config) SchedulingRules() scheduling.Rules {
	return scheduling.Rules{
		BufferMinutes:      c.ConflictRules.BufferMinutes,
		AssumedGameMinutes: c.ConflictRules.AssumedGameMinutes,
		MaxGamesPerDay:     c.ConflictRules.MaxGamesPerDay,
		MaxGamesPerWeek:    c.ConflictRules.MaxGamesPerWeek,
		BackToBackMinutes:  c.ConflictRules.BackToBackMinutes,
		WarnGamesPerDay:    c.ConflictRules.WarnGamesPerDay,
		LevelMismatchTiers: c.ConflictRules.LevelMismatchTiers,
	}
}

// ScoringDefaults converts the configured fallbacks to the core type
func (c *Config) ScoringDefaults() scoring.Defaults {
	return scoring.Defaults{
		Proximity:            c.Scoring.ProximityDefault,
		Availability:         c.Scoring.AvailabilityDefault,
		Experience:           c.Scoring.ExperienceDefault,
		NoHistoryPerformance: c.Scoring.NoHistoryPerformance,
	}
}

// findConfigFile searches for the config file in the current directory and
// the user's home directory, preferring the environment-specific name
func findConfigFile(env string) (string, error) {
	names := []string{"refassign.yaml"}
	if env != "" {
		names = append([]string{"refassign." + env + ".yaml"}, names...)
	}

	homeDir, homeErr := os.UserHomeDir()

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
		if homeErr == nil {
			homePath := filepath.Join(homeDir, name)
			if _, err := os.Stat(homePath); err == nil {
				return homePath, nil
			}
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
