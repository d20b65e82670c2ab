package suggest

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Weights are the factor weights combined into a suggestion's confidence.
// Each must be in [0, 1]. Callers may override the defaults per request.
type Weights struct {
	Proximity    float64 `yaml:"proximity" json:"proximity" validate:"min=0,max=1"`
	Availability float64 `yaml:"availability" json:"availability" validate:"min=0,max=1"`
	Experience   float64 `yaml:"experience" json:"experience" validate:"min=0,max=1"`
	Performance  float64 `yaml:"performance" json:"performance" validate:"min=0,max=1"`
}

// DefaultWeights returns the standard factor weighting
func DefaultWeights() Weights {
	return Weights{
		Proximity:    0.3,
		Availability: 0.4,
		Experience:   0.2,
		Performance:  0.1,
	}
}

// Validate checks every weight is within range
func (w Weights) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("%w: weights must each be between 0 and 1: %v", ErrValidation, err)
	}
	return nil
}

// Thresholds are the ranking knobs shared by the ranker and the suggestion
// lifecycle. One configured instance is injected everywhere instead of
// re-declaring the values per call site.
type Thresholds struct {
	// MinConfidence is the floor below which suggestions are discarded
	MinConfidence float64

	// TieBreak is the confidence difference under which two suggestions are
	// considered tied and ordered by warning count instead
	TieBreak float64

	// WarningPenalty is the flat confidence reduction applied when soft
	// warnings are attached
	WarningPenalty float64

	// PenaltyFloor is the minimum confidence after the warning penalty
	PenaltyFloor float64

	// HistoricalWeight scales the historical pattern bonus into the confidence
	HistoricalWeight float64

	// TTL is how long a pending suggestion remains acceptable
	TTL time.Duration
}

// DefaultThresholds returns the standard ranking thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinConfidence:    0.3,
		TieBreak:         0.05,
		WarningPenalty:   0.1,
		PenaltyFloor:     0.1,
		HistoricalWeight: 0.1,
		TTL:              time.Hour,
	}
}
