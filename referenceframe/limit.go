package referenceframe

import (
	"math"

	"go.viam.com/planarkin/utils"
)

// Limit represents the limits of motion for a single revolute joint, in radians.
type Limit struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Clamp bounds v to the limit.
func (l Limit) Clamp(v float64) float64 {
	return utils.Clamp(v, l.Min, l.Max)
}

// Contains reports whether v lies within the limit, inclusive.
func (l Limit) Contains(v float64) bool {
	return v >= l.Min && v <= l.Max
}

// Range returns the width of the limit.
func (l Limit) Range() float64 {
	return l.Max - l.Min
}

// Mid returns the center of the limit.
func (l Limit) Mid() float64 {
	return l.Min + l.Range()/2
}

// UnboundedLimit returns a limit that does not restrict the joint at all.
func UnboundedLimit() Limit {
	return Limit{Min: math.Inf(-1), Max: math.Inf(1)}
}

func limitsAlmostEqual(a, b []Limit) bool {
	if len(a) != len(b) {
		return false
	}

	const epsilon = 1e-5
	for idx, x := range a {
		if !utils.Float64AlmostEqual(x.Min, b[idx].Min, epsilon) ||
			!utils.Float64AlmostEqual(x.Max, b[idx].Max, epsilon) {
			return false
		}
	}

	return true
}

// ClampAll clamps each value to the limit at the same index. values and limits must have equal length.
func ClampAll(values []float64, limits []Limit) []float64 {
	clamped := make([]float64, len(values))
	for i, v := range values {
		clamped[i] = limits[i].Clamp(v)
	}
	return clamped
}

// WithinLimits reports whether every value lies inside the limit at the same index.
func WithinLimits(values []float64, limits []Limit) bool {
	if len(values) != len(limits) {
		return false
	}
	for i, v := range values {
		if !limits[i].Contains(v) {
			return false
		}
	}
	return true
}
