package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestUpwardCWPoint(t *testing.T) {
	up := UpwardCWPoint(0, 2)
	test.That(t, up.X, test.ShouldAlmostEqual, 0)
	test.That(t, up.Y, test.ShouldAlmostEqual, 2)

	right := UpwardCWPoint(math.Pi/2, 2)
	test.That(t, right.X, test.ShouldAlmostEqual, 2)
	test.That(t, right.Y, test.ShouldAlmostEqual, 0)

	down := UpwardCWPoint(math.Pi, 1)
	test.That(t, down.Y, test.ShouldAlmostEqual, -1)
}

func TestAngleBetween(t *testing.T) {
	angle, ok := AngleBetween(r2.Point{X: 1}, r2.Point{Y: 3}, 1e-4)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, angle, test.ShouldAlmostEqual, math.Pi/2)

	angle, ok = AngleBetween(r2.Point{X: 1}, r2.Point{X: -1}, 1e-4)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, angle, test.ShouldAlmostEqual, math.Pi)

	// parallel vectors whose normalized dot product rounds above 1
	angle, ok = AngleBetween(r2.Point{X: 0.1, Y: 0.3}, r2.Point{X: 0.1, Y: 0.3}.Mul(7), 1e-4)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, math.IsNaN(angle), test.ShouldBeFalse)
	test.That(t, angle, test.ShouldAlmostEqual, 0)

	_, ok = AngleBetween(r2.Point{X: 1e-5}, r2.Point{X: 1}, 1e-4)
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = AngleBetween(r2.Point{X: 1}, Origin, 1e-4)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestInterpolation(t *testing.T) {
	a := r2.Point{X: 1, Y: 1}
	b := r2.Point{X: 3, Y: -1}
	test.That(t, Lerp(a, b, 0), test.ShouldResemble, a)
	test.That(t, Lerp(a, b, 1), test.ShouldResemble, b)
	test.That(t, PointAlmostEqual(Midpoint(a, b), r2.Point{X: 2, Y: 0}, 1e-12), test.ShouldBeTrue)
	test.That(t, Distance(a, b), test.ShouldAlmostEqual, math.Sqrt(8))
}

func TestQuadraticBezier(t *testing.T) {
	p0 := r2.Point{X: 0, Y: 0}
	p1 := r2.Point{X: 1, Y: 2}
	p2 := r2.Point{X: 2, Y: 0}
	test.That(t, PointAlmostEqual(QuadraticBezier(p0, p1, p2, 0), p0, 1e-12), test.ShouldBeTrue)
	test.That(t, PointAlmostEqual(QuadraticBezier(p0, p1, p2, 1), p2, 1e-12), test.ShouldBeTrue)
	// halfway: 0.25*p0 + 0.5*p1 + 0.25*p2
	test.That(t, PointAlmostEqual(QuadraticBezier(p0, p1, p2, 0.5), r2.Point{X: 1, Y: 1}, 1e-12), test.ShouldBeTrue)
}

func TestCrossCW(t *testing.T) {
	up := UpwardCWPoint(0, 1)
	right := UpwardCWPoint(math.Pi/2, 1)
	test.That(t, CrossCW(up, right), test.ShouldAlmostEqual, 1)
	test.That(t, CrossCW(right, up), test.ShouldAlmostEqual, -1)
	test.That(t, CrossCW(up, up.Mul(3)), test.ShouldAlmostEqual, 0)
}
