package suggest

import (
	"strings"
	"unicode"

	"github.com/sportsync/refassign/pkg/core/scoring"
)

// Reasoning assembles a human-readable explanation for a scored candidate.
// Each sub-score crossing a high or low threshold contributes a canned
// clause; the result is a single comma-joined sentence for display, not
// machine parsing.
func Reasoning(b scoring.Breakdown, warningCount int) string {
	var clauses []string

	if b.Proximity >= 0.9 {
		clauses = append(clauses, "lives very close to the venue")
	} else if b.Proximity < 0.4 {
		clauses = append(clauses, "faces a long trip to the venue")
	}

	if b.Availability >= 0.9 {
		clauses = append(clauses, "explicitly available for this time slot")
	} else if b.Availability < 0.5 {
		clauses = append(clauses, "potential availability conflict")
	}

	if b.Experience >= 0.9 {
		clauses = append(clauses, "experience level is an excellent match")
	} else if b.Experience < 0.4 {
		clauses = append(clauses, "experience level is a weak match for this game")
	}

	if b.Performance >= 0.8 {
		clauses = append(clauses, "strong record of accepting and completing assignments")
	} else if b.Performance < 0.4 {
		clauses = append(clauses, "uneven assignment history")
	}

	if b.HistoricalBonus >= 0.4 {
		clauses = append(clauses, "strong historical success pattern at this venue/time")
	}

	if warningCount > 0 {
		clauses = append(clauses, "has scheduling warnings to review")
	}

	if len(clauses) == 0 {
		return "Reasonable overall fit for this game"
	}

	return capitalize(strings.Join(clauses, ", "))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
