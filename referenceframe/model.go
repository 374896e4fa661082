// Package referenceframe describes a planar arm: its segments, joint limits and the obstacles recorded next to it.
package referenceframe

import (
	"math"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
)

// DefaultPayload is the payload carried by the default arm.
const DefaultPayload = 0.5

// ArmConfig describes a planar serial arm: one segment per revolute joint, each joint bending relative to the
// segment before it. An ArmConfig is created once and treated as read-only afterwards.
//
// MaxAngularVelocity and MaxAngularAcceleration are advisory; none of the current solvers or planners
// consult them, but they are validated like the rest of the per-joint data.
type ArmConfig struct {
	SegmentLengths         []float64
	JointLimits            []Limit
	MaxAngularVelocity     []float64
	MaxAngularAcceleration []float64
	Payload                float64
}

// DefaultArmConfig returns the three segment arm the rest of the tooling assumes when no model is given.
func DefaultArmConfig() *ArmConfig {
	return &ArmConfig{
		SegmentLengths: []float64{2, 1.5, 1},
		JointLimits: []Limit{
			{Min: 0, Max: math.Pi},
			{Min: 0, Max: math.Pi},
			{Min: 0, Max: math.Pi},
		},
		MaxAngularVelocity:     []float64{1.0, 1.2, 1.5},
		MaxAngularAcceleration: []float64{0.5, 0.6, 0.7},
		Payload:                DefaultPayload,
	}
}

// DefaultJointAngles returns the resting pose of an arm with dof joints: every joint bent by pi/4.
func DefaultJointAngles(dof int) []float64 {
	angles := make([]float64, dof)
	for i := range angles {
		angles[i] = math.Pi / 4
	}
	return angles
}

// DoF returns the number of joints.
func (c *ArmConfig) DoF() int {
	return len(c.SegmentLengths)
}

// MaxReach returns the distance from the base to the end effector when the arm is fully extended.
func (c *ArmConfig) MaxReach() float64 {
	return floats.Sum(c.SegmentLengths)
}

// Limits returns a copy of the joint limits.
func (c *ArmConfig) Limits() []Limit {
	limits := make([]Limit, len(c.JointLimits))
	copy(limits, c.JointLimits)
	return limits
}

// Lengths returns a copy of the segment lengths.
func (c *ArmConfig) Lengths() []float64 {
	lengths := make([]float64, len(c.SegmentLengths))
	copy(lengths, c.SegmentLengths)
	return lengths
}

// CheckDoF returns an error if values does not carry exactly one entry per joint.
func (c *ArmConfig) CheckDoF(values []float64) error {
	if len(values) != c.DoF() {
		return NewIncorrectDoFError(len(values), c.DoF())
	}
	return nil
}

// Validate ensures the per-joint sequences line up and every value is usable. All problems are reported
// together.
func (c *ArmConfig) Validate() error {
	var err error
	n := len(c.SegmentLengths)
	if n == 0 {
		return multierr.Append(err, NewNonPositiveSegmentError(0, 0))
	}
	for i, length := range c.SegmentLengths {
		if !(length > 0) || math.IsInf(length, 0) {
			err = multierr.Append(err, NewNonPositiveSegmentError(i, length))
		}
	}
	if len(c.JointLimits) != n {
		err = multierr.Append(err, NewMismatchedLengthError("joint limits", len(c.JointLimits), n))
	}
	for i, limit := range c.JointLimits {
		if math.IsNaN(limit.Min) || math.IsNaN(limit.Max) || limit.Min > limit.Max {
			err = multierr.Append(err, NewInvalidLimitError(i, limit))
		}
	}
	if len(c.MaxAngularVelocity) != n {
		err = multierr.Append(err, NewMismatchedLengthError("max angular velocity", len(c.MaxAngularVelocity), n))
	}
	if len(c.MaxAngularAcceleration) != n {
		err = multierr.Append(err, NewMismatchedLengthError("max angular acceleration", len(c.MaxAngularAcceleration), n))
	}
	return err
}

// AlmostEqual compares two configs, allowing small floating point differences.
func (c *ArmConfig) AlmostEqual(other *ArmConfig) bool {
	if other == nil {
		return false
	}
	const epsilon = 1e-5
	return floats.EqualApprox(c.SegmentLengths, other.SegmentLengths, epsilon) &&
		limitsAlmostEqual(c.JointLimits, other.JointLimits) &&
		floats.EqualApprox(c.MaxAngularVelocity, other.MaxAngularVelocity, epsilon) &&
		floats.EqualApprox(c.MaxAngularAcceleration, other.MaxAngularAcceleration, epsilon) &&
		math.Abs(c.Payload-other.Payload) <= epsilon
}
