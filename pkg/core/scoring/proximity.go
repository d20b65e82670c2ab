package scoring

import "strings"

const proximityPrefixLen = 3

// ProximityScore estimates how close a referee lives to a game venue from
// the first three characters of their postal codes. Postal codes sharing the
// full prefix (e.g. both "T2N") score highest; each differing character in
// the prefix drops the score a band. Missing data on either side scores the
// neutral default.
func ProximityScore(refereePostal, gamePostal string, defaults Defaults) float64 {
	ref := postalPrefix(refereePostal)
	game := postalPrefix(gamePostal)
	if ref == "" || game == "" {
		return defaults.Proximity
	}

	if ref == game {
		return 0.95
	}

	diffs := 0
	for i := 0; i < proximityPrefixLen; i++ {
		if ref[i] != game[i] {
			diffs++
		}
	}
	switch diffs {
	case 1:
		return 0.8
	case 2:
		return 0.6
	case 3:
		return 0.4
	default:
		return 0.3
	}
}

// postalPrefix normalizes a postal code and returns its first three
// characters, or empty if the code is missing or too short
func postalPrefix(code string) string {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), " ", ""))
	if len(normalized) < proximityPrefixLen {
		return ""
	}
	return normalized[:proximityPrefixLen]
}
