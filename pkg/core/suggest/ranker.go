package suggest

import (
	"math"
	"sort"

	"github.com/sportsync/refassign/pkg/core/scoring"
	"github.com/sportsync/refassign/pkg/db"
)

// Candidate is a scored (game, referee) pair before ranking
type Candidate struct {
	Game       *db.Game
	Referee    *db.Referee
	Breakdown  scoring.Breakdown
	Warnings   []string
	Confidence float64
}

// Confidence combines the sub-scores into a single [0, 1] value. Attached
// soft warnings apply a flat penalty with a floor so warned-but-viable
// candidates stay rankable.
func Confidence(b scoring.Breakdown, warningCount int, w Weights, t Thresholds) float64 {
	confidence := b.Proximity*w.Proximity +
		b.Availability*w.Availability +
		b.Experience*w.Experience +
		b.Performance*w.Performance +
		b.HistoricalBonus*t.HistoricalWeight

	confidence = math.Min(1.0, math.Max(0.0, confidence))

	if warningCount > 0 {
		confidence = math.Max(t.PenaltyFloor, confidence-t.WarningPenalty)
	}

	return confidence
}

// Rank computes confidence for every candidate, drops those below the
// minimum, and orders the rest by descending confidence. Candidates within
// the tie-break margin of each other are ordered by fewer warnings first.
func Rank(candidates []Candidate, w Weights, t Thresholds) []Candidate {
	ranked := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		c.Confidence = Confidence(c.Breakdown, len(c.Warnings), w, t)
		if c.Confidence < t.MinConfidence {
			continue
		}
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		diff := ranked[i].Confidence - ranked[j].Confidence
		if math.Abs(diff) < t.TieBreak {
			return len(ranked[i].Warnings) < len(ranked[j].Warnings)
		}
		return diff > 0
	})

	return ranked
}
