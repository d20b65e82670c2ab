package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsync/refassign/pkg/core/scoring"
	"github.com/sportsync/refassign/pkg/db"
)

func candidate(refereeID string, b scoring.Breakdown, warnings ...string) Candidate {
	return Candidate{
		Game:      &db.Game{ID: "g1"},
		Referee:   &db.Referee{ID: refereeID},
		Breakdown: b,
		Warnings:  warnings,
	}
}

func rankedIDs(ranked []Candidate) []string {
	ids := make([]string, 0, len(ranked))
	for _, c := range ranked {
		ids = append(ids, c.Referee.ID)
	}
	return ids
}

func TestConfidence_WeightedSum(t *testing.T) {
	b := scoring.Breakdown{Proximity: 0.5, Availability: 0.5, Experience: 0.5, Performance: 0.5}

	got := Confidence(b, 0, DefaultWeights(), DefaultThresholds())
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestConfidence_ClampedToOne(t *testing.T) {
	b := scoring.Breakdown{Proximity: 1, Availability: 1, Experience: 1, Performance: 1, HistoricalBonus: 1}

	got := Confidence(b, 0, DefaultWeights(), DefaultThresholds())
	assert.Equal(t, 1.0, got)
}

func TestConfidence_WarningPenalty(t *testing.T) {
	b := scoring.Breakdown{Availability: 1, Experience: 1}

	clean := Confidence(b, 0, DefaultWeights(), DefaultThresholds())
	warned := Confidence(b, 1, DefaultWeights(), DefaultThresholds())
	assert.InDelta(t, 0.6, clean, 1e-9)
	assert.InDelta(t, 0.5, warned, 1e-9)

	// Multiple warnings still apply the flat penalty once
	assert.InDelta(t, 0.5, Confidence(b, 3, DefaultWeights(), DefaultThresholds()), 1e-9)
}

func TestConfidence_PenaltyFloor(t *testing.T) {
	b := scoring.Breakdown{Performance: 1}

	got := Confidence(b, 1, DefaultWeights(), DefaultThresholds())
	assert.InDelta(t, 0.1, got, 1e-9)
}

func TestConfidence_CustomWeights(t *testing.T) {
	b := scoring.Breakdown{Proximity: 0.8, Availability: 1}
	w := Weights{Proximity: 1}

	got := Confidence(b, 0, w, DefaultThresholds())
	assert.InDelta(t, 0.8, got, 1e-9)
}

func TestRank_FiltersAndOrders(t *testing.T) {
	candidates := []Candidate{
		candidate("low", scoring.Breakdown{Experience: 1}),
		candidate("mid", scoring.Breakdown{Availability: 1}),
		candidate("top", scoring.Breakdown{Proximity: 1, Availability: 1, Experience: 1, Performance: 1}),
		candidate("good", scoring.Breakdown{Availability: 1, Experience: 1}),
	}

	ranked := Rank(candidates, DefaultWeights(), DefaultThresholds())

	// "low" sits at 0.2, under the 0.3 floor
	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"top", "good", "mid"}, rankedIDs(ranked))

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Confidence, ranked[i].Confidence)
	}
}

func TestRank_TieBreakPrefersFewerWarnings(t *testing.T) {
	// 0.43 with a warning vs 0.40 clean: within the 0.05 margin the clean
	// candidate wins despite the slightly lower confidence
	candidates := []Candidate{
		candidate("warned", scoring.Breakdown{Availability: 1, Experience: 0.65}, "tight turnaround"),
		candidate("clean", scoring.Breakdown{Availability: 1}),
	}

	ranked := Rank(candidates, DefaultWeights(), DefaultThresholds())

	require.Len(t, ranked, 2)
	assert.Equal(t, []string{"clean", "warned"}, rankedIDs(ranked))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, DefaultWeights(), DefaultThresholds()))
}
