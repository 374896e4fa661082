package kinematics

import (
	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"
)

// JointDistance is the sum of the absolute differences between each joint of from and to. Both must have the
// same length.
func JointDistance(from, to []float64) float64 {
	return floats.Distance(from, to, 1)
}

// PositionError returns how far the end effector of positions is from target.
func PositionError(positions []r2.Point, target r2.Point) float64 {
	return EndEffector(positions).Sub(target).Norm()
}
