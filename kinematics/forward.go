// Package kinematics implements forward and inverse kinematics for planar serial arms.
//
// Joint angles are relative bends: a joint angle of zero continues in the direction of the previous
// segment, and the first joint is measured from the vertical (+y) axis. Positive angles bend clockwise.
package kinematics

import (
	"github.com/golang/geo/r2"

	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
)

// ForwardKinematics returns the position of the far end of every segment, base first, for the given joint
// angles. The last position is the end effector. It is pure: identical input gives identical output.
func ForwardKinematics(cfg *referenceframe.ArmConfig, angles []float64) ([]r2.Point, error) {
	if err := cfg.CheckDoF(angles); err != nil {
		return nil, err
	}
	return forward(cfg.SegmentLengths, angles), nil
}

// forward assumes len(lengths) == len(angles).
func forward(lengths, angles []float64) []r2.Point {
	positions := make([]r2.Point, len(lengths))
	pos := spatialmath.Origin
	cumulative := 0.
	for i, length := range lengths {
		cumulative += angles[i]
		pos = pos.Add(spatialmath.UpwardCWPoint(cumulative, length))
		positions[i] = pos
	}
	return positions
}

// EndEffector returns the last position of a forward kinematics result, or the origin for an empty arm.
func EndEffector(positions []r2.Point) r2.Point {
	if len(positions) == 0 {
		return spatialmath.Origin
	}
	return positions[len(positions)-1]
}

// jointOrigin returns the pivot of joint i: the origin for the base joint, otherwise the end of segment i-1.
func jointOrigin(positions []r2.Point, i int) r2.Point {
	if i == 0 {
		return spatialmath.Origin
	}
	return positions[i-1]
}
