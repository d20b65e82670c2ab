package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProximityScore_ExactPrefixMatch(t *testing.T) {
	defaults := DefaultDefaults()

	assert.Equal(t, 0.95, ProximityScore("T2N 1N4", "T2N 0A1", defaults))
	assert.Equal(t, 0.95, ProximityScore("t2n1n4", "T2N 0A1", defaults))
}

func TestProximityScore_PrefixDifferences(t *testing.T) {
	defaults := DefaultDefaults()

	assert.Equal(t, 0.8, ProximityScore("T2M 1N4", "T2N 0A1", defaults))
	assert.Equal(t, 0.6, ProximityScore("T3M 1N4", "T2N 0A1", defaults))
	assert.Equal(t, 0.4, ProximityScore("V3M 1N4", "T2N 0A1", defaults))
}

func TestProximityScore_MissingPostalCode(t *testing.T) {
	defaults := DefaultDefaults()

	assert.Equal(t, 0.5, ProximityScore("", "T2N 0A1", defaults))
	assert.Equal(t, 0.5, ProximityScore("T2N 1N4", "", defaults))
	assert.Equal(t, 0.5, ProximityScore("T2", "T2N 0A1", defaults))
}
