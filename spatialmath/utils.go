// Package spatialmath defines the planar geometry used by the arm: points, rays and curves in the plane.
//
// Points are github.com/golang/geo/r2 points. The plane is oriented with y pointing "up"; angles
// measured by UpwardCWPoint start at the +y axis and grow clockwise toward +x.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/planarkin/utils"
)

// Origin is the base of every arm.
var Origin = r2.Point{}

// UpwardCWPoint returns the point `distance` away from the origin along a ray whose angle is measured
// clockwise from the +y axis, in radians.
// 0      -  (0,increasing) // Up
// pi/2   -  (increasing, 0) // Right
// pi     -  (0, decreasing) // Down
// 3pi/2  -  (decreasing,0) // Left
func UpwardCWPoint(angle, distance float64) r2.Point {
	return r2.Point{X: distance * math.Sin(angle), Y: distance * math.Cos(angle)}
}

// Distance returns the euclidean distance between two points.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// AngleBetween returns the unsigned angle in [0, pi] between two vectors. ok is false when either vector is
// shorter than minNorm, in which case the angle is undefined.
func AngleBetween(a, b r2.Point, minNorm float64) (angle float64, ok bool) {
	na, nb := a.Norm(), b.Norm()
	if na < minNorm || nb < minNorm {
		return 0, false
	}
	// Account for floating point issues
	cosAngle := utils.Clamp(a.Dot(b)/(na*nb), -1, 1)
	return math.Acos(cosAngle), true
}

// Lerp returns the point a fraction t of the way from a to b. Lerp(a, b, 0) is exactly a and Lerp(a, b, 1) is
// exactly b.
func Lerp(a, b r2.Point, t float64) r2.Point {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b r2.Point) r2.Point {
	return Lerp(a, b, 0.5)
}

// QuadraticBezier evaluates the quadratic Bezier curve with control points p0, p1, p2 at t.
func QuadraticBezier(p0, p1, p2 r2.Point, t float64) r2.Point {
	mt := 1 - t
	return p0.Mul(mt * mt).Add(p1.Mul(2 * mt * t)).Add(p2.Mul(t * t))
}

// PointAlmostEqual compares two points component-wise within epsilon.
func PointAlmostEqual(a, b r2.Point, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) && utils.Float64AlmostEqual(a.Y, b.Y, epsilon)
}

// CrossCW returns the 2D cross product of a and b measured in the clockwise-positive frame used by
// UpwardCWPoint: it is positive when b lies clockwise of a.
func CrossCW(a, b r2.Point) float64 {
	return b.Cross(a)
}
