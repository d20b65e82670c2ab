package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sportsync/refassign/pkg/db"
)

func TestExperienceScore_RecreationalBonus(t *testing.T) {
	defaults := DefaultDefaults()

	// Elite referee on a recreational game caps at 1.0
	assert.Equal(t, 1.0, ExperienceScore(db.RefereeLevelElite, db.GameLevelRecreational, defaults))

	// Rookie qualifies for recreational and gets the bonus
	assert.InDelta(t, 0.5, ExperienceScore(db.RefereeLevelRookie, db.GameLevelRecreational, defaults), 1e-9)
}

func TestExperienceScore_QualifiedUnchanged(t *testing.T) {
	defaults := DefaultDefaults()

	assert.Equal(t, 0.6, ExperienceScore(db.RefereeLevelJunior, db.GameLevelCompetitive, defaults))
	assert.Equal(t, 0.9, ExperienceScore(db.RefereeLevelSenior, db.GameLevelCompetitive, defaults))
	assert.Equal(t, 0.9, ExperienceScore(db.RefereeLevelSenior, db.GameLevelElite, defaults))
	assert.Equal(t, 1.0, ExperienceScore(db.RefereeLevelElite, db.GameLevelElite, defaults))
}

func TestExperienceScore_MismatchPenalty(t *testing.T) {
	defaults := DefaultDefaults()

	// Rookie on a competitive game: 0.3 * 0.8
	assert.InDelta(t, 0.24, ExperienceScore(db.RefereeLevelRookie, db.GameLevelCompetitive, defaults), 1e-9)

	// Junior on an elite game: 0.6 * 0.8
	assert.InDelta(t, 0.48, ExperienceScore(db.RefereeLevelJunior, db.GameLevelElite, defaults), 1e-9)
}

func TestExperienceScore_UnknownLevels(t *testing.T) {
	defaults := DefaultDefaults()

	// Unknown referee level falls back to the neutral base
	assert.InDelta(t, 0.7, ExperienceScore("Wizard", db.GameLevelRecreational, defaults), 1e-9)

	// Unknown game level returns the base untouched
	assert.Equal(t, 0.9, ExperienceScore(db.RefereeLevelSenior, "Exhibition", defaults))
}
