package scoring

import "github.com/sportsync/refassign/pkg/db"

// Referee level base values for experience scoring
var levelBases = map[string]float64{
	db.RefereeLevelRookie: 0.3,
	db.RefereeLevelJunior: 0.6,
	db.RefereeLevelSenior: 0.9,
	db.RefereeLevelElite:  1.0,
}

// Minimum base value a referee needs for each game level to count as a
// match; below the threshold the base is penalized for the mismatch
var gameLevelThresholds = map[string]float64{
	db.GameLevelRecreational: 0.3,
	db.GameLevelCompetitive:  0.6,
	db.GameLevelElite:        0.9,
}

// ExperienceScore rates how well a referee's level fits a game's level.
// Recreational games give qualified referees a bonus (experienced officials
// make easy games run smoothly); under-qualified referees are penalized at
// any level.
func ExperienceScore(refereeLevel, gameLevel string, defaults Defaults) float64 {
	base, ok := levelBases[refereeLevel]
	if !ok {
		base = defaults.Experience
	}

	threshold, ok := gameLevelThresholds[gameLevel]
	if !ok {
		return base
	}
	if base < threshold {
		return base * 0.8
	}
	if gameLevel == db.GameLevelRecreational {
		return min(1.0, base+0.2)
	}
	return base
}
