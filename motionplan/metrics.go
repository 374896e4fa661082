package motionplan

import (
	"math/rand"

	"github.com/golang/geo/r2"

	"go.viam.com/planarkin/kinematics"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/utils"
)

const (
	// BaseMovementTime is the time in seconds any move takes, even one with no joint travel.
	BaseMovementTime = 0.5
	// MovementTimePerRadian is the time in seconds added for every radian of total joint travel.
	MovementTimePerRadian = 0.02

	// MaxEfficiencyScore bounds every efficiency score from above; scores are never below zero.
	MaxEfficiencyScore = 10.0

	placeholderScoreCenter = 7.5
	placeholderScoreSpread = 1.25
)

// EstimateMovementTime estimates how long moving from prev to next takes: a fixed base time plus a cost per
// radian of total absolute joint travel.
func EstimateMovementTime(prev, next []float64) (float64, error) {
	if len(prev) != len(next) {
		return 0, referenceframe.NewIncorrectDoFError(len(next), len(prev))
	}
	return BaseMovementTime + MovementTimePerRadian*kinematics.JointDistance(prev, next), nil
}

// EfficiencyScorer rates how well a pose serves a target, from 0 to MaxEfficiencyScore.
type EfficiencyScorer interface {
	Score(cfg *referenceframe.ArmConfig, target r2.Point, angles []float64) float64
}

// RandomEfficiencyScorer is a placeholder scorer standing in for a learned model. It ignores its inputs and
// returns a value near 7.5.
type RandomEfficiencyScorer struct {
	rng *rand.Rand
}

// NewRandomEfficiencyScorer returns a placeholder scorer drawing from rng, or from a fixed seed if rng is nil.
func NewRandomEfficiencyScorer(rng *rand.Rand) *RandomEfficiencyScorer {
	if rng == nil {
		//nolint:gosec
		rng = rand.New(rand.NewSource(defaultRandomSeed))
	}
	return &RandomEfficiencyScorer{rng: rng}
}

// Score returns 7.5 plus uniform noise in [-1.25, 1.25), clamped to [0, MaxEfficiencyScore].
func (s *RandomEfficiencyScorer) Score(_ *referenceframe.ArmConfig, _ r2.Point, _ []float64) float64 {
	noise := (s.rng.Float64()*2 - 1) * placeholderScoreSpread
	return utils.Clamp(placeholderScoreCenter+noise, 0, MaxEfficiencyScore)
}
