package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "refassign.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromPath_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
databaseURL: postgres://localhost:5432/refassign_test
weights:
  proximity: 0.5
ranking:
  suggestionTTLMinutes: 120
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/refassign_test", cfg.DatabaseURL)

	// Overridden keys take effect
	assert.Equal(t, 0.5, cfg.Weights.Proximity)
	assert.Equal(t, 120, cfg.Ranking.SuggestionTTLMinutes)

	// Absent keys keep their defaults
	assert.Equal(t, 0.4, cfg.Weights.Availability)
	assert.Equal(t, 0.3, cfg.Ranking.MinConfidence)
	assert.Equal(t, 4, cfg.ConflictRules.MaxGamesPerDay)
	assert.Equal(t, 15, cfg.ConflictRules.MaxGamesPerWeek)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, 50.0, cfg.Wages["Competitive"])
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "databaseURL: [unclosed")

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFromPath_ValidationFailures(t *testing.T) {
	// No databaseURL
	path := writeConfig(t, "weights:\n  proximity: 0.5\n")
	_, err := LoadFromPath(path)
	assert.Error(t, err)

	// Weight out of range
	path = writeConfig(t, `
databaseURL: postgres://localhost:5432/refassign_test
weights:
  proximity: 1.5
`)
	_, err = LoadFromPath(path)
	assert.Error(t, err)

	// Malformed notification sender
	path = writeConfig(t, `
databaseURL: postgres://localhost:5432/refassign_test
notifications:
  enabled: true
  gmailSender: not-an-email
`)
	_, err = LoadFromPath(path)
	assert.Error(t, err)
}

func TestConfig_CoreConversions(t *testing.T) {
	cfg := Default()
	cfg.DatabaseURL = "postgres://localhost:5432/refassign_test"
	cfg.Ranking.SuggestionTTLMinutes = 90
	cfg.ConflictRules.BufferMinutes = 20
	cfg.Scoring.NoHistoryPerformance = 0.5
	cfg.Weights.Performance = 0.2

	assert.Equal(t, 0.2, cfg.SuggestWeights().Performance)
	assert.Equal(t, 90*time.Minute, cfg.SuggestThresholds().TTL)
	assert.Equal(t, 20, cfg.SchedulingRules().BufferMinutes)
	assert.Equal(t, 0.5, cfg.ScoringDefaults().NoHistoryPerformance)
}

func TestDefault_MatchesCoreDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0.3, cfg.Weights.Proximity)
	assert.Equal(t, 0.4, cfg.Weights.Availability)
	assert.Equal(t, 0.2, cfg.Weights.Experience)
	assert.Equal(t, 0.1, cfg.Weights.Performance)
	assert.Equal(t, 60, cfg.Ranking.SuggestionTTLMinutes)
	assert.Equal(t, 0.6, cfg.Scoring.NoHistoryPerformance)
	assert.Equal(t, 30, cfg.ConflictRules.BufferMinutes)
	assert.Equal(t, 150, cfg.ConflictRules.AssumedGameMinutes)
}
