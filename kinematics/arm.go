package kinematics

import (
	"github.com/golang/geo/r2"

	"go.viam.com/planarkin/referenceframe"
)

// ArmState is a pose of an arm: its joint angles and the joint positions they produce. The positions are
// always the forward kinematics of the angles; the only way to change either is to build a new ArmState.
type ArmState struct {
	angles    []float64
	positions []r2.Point
}

// NewArmState builds the state for the given joint angles.
func NewArmState(cfg *referenceframe.ArmConfig, angles []float64) (ArmState, error) {
	positions, err := ForwardKinematics(cfg, angles)
	if err != nil {
		return ArmState{}, err
	}
	return ArmState{angles: append([]float64(nil), angles...), positions: positions}, nil
}

// DefaultArmState returns the resting pose of the arm.
func DefaultArmState(cfg *referenceframe.ArmConfig) ArmState {
	angles := referenceframe.DefaultJointAngles(cfg.DoF())
	return ArmState{angles: angles, positions: forward(cfg.SegmentLengths, angles)}
}

// StateFromSolution returns the state a solver solution describes.
func StateFromSolution(sol *Solution) ArmState {
	return ArmState{
		angles:    append([]float64(nil), sol.Angles...),
		positions: append([]r2.Point(nil), sol.Positions...),
	}
}

// Angles returns a copy of the joint angles.
func (s ArmState) Angles() []float64 {
	return append([]float64(nil), s.angles...)
}

// Positions returns a copy of the joint positions.
func (s ArmState) Positions() []r2.Point {
	return append([]r2.Point(nil), s.positions...)
}

// EndEffector returns the position of the tip of the last segment.
func (s ArmState) EndEffector() r2.Point {
	return EndEffector(s.positions)
}

// DoF returns the number of joints in the state.
func (s ArmState) DoF() int {
	return len(s.angles)
}
