package referenceframe

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestNewObstacle(t *testing.T) {
	o, err := NewObstacle(r2.Point{X: 1, Y: 2}, 0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o.ID, test.ShouldNotBeEmpty)
	test.That(t, o.Contains(r2.Point{X: 1.3, Y: 2.3}), test.ShouldBeTrue)
	test.That(t, o.Contains(r2.Point{X: 2, Y: 2}), test.ShouldBeFalse)

	other, err := NewObstacle(r2.Point{X: 1, Y: 2}, 0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, other.ID, test.ShouldNotEqual, o.ID)

	for _, radius := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewObstacle(r2.Point{}, radius)
		test.That(t, err, test.ShouldNotBeNil)
	}
	_, err = NewObstacle(r2.Point{X: math.NaN()}, 1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestWorldState(t *testing.T) {
	a, err := NewObstacle(r2.Point{X: 1}, 1)
	test.That(t, err, test.ShouldBeNil)
	b, err := NewObstacle(r2.Point{Y: 1}, 2)
	test.That(t, err, test.ShouldBeNil)

	ws := NewWorldState(a)
	ws.AddObstacle(b)
	test.That(t, ws.Len(), test.ShouldEqual, 2)

	obstacles := ws.Obstacles()
	test.That(t, obstacles[0].ID, test.ShouldEqual, a.ID)
	obstacles[0].Radius = 100
	test.That(t, ws.Obstacles()[0].Radius, test.ShouldEqual, 1)

	test.That(t, ws.RemoveObstacle(a.ID), test.ShouldBeTrue)
	test.That(t, ws.RemoveObstacle(a.ID), test.ShouldBeFalse)
	test.That(t, ws.Len(), test.ShouldEqual, 1)
	test.That(t, ws.Obstacles()[0].ID, test.ShouldEqual, b.ID)
}
