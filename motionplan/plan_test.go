package motionplan

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func testWaypoints() []Waypoint {
	return []Waypoint{
		{Position: r2.Point{X: 0, Y: 0}, Angles: []float64{0, 0}, Timestamp: 0},
		{Position: r2.Point{X: 3, Y: 4}, Angles: []float64{0.1, 0.1}, Timestamp: 1},
		{Position: r2.Point{X: 3, Y: 5}, Angles: []float64{0.2, 0.2}, Timestamp: 2},
	}
}

func TestTrajectoryCursor(t *testing.T) {
	traj, err := NewTrajectory(Linear, testWaypoints())
	test.That(t, err, test.ShouldBeNil)

	test.That(t, traj.Index(), test.ShouldEqual, 0)
	test.That(t, traj.Done(), test.ShouldBeFalse)
	w, ok := traj.Current()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, w.Timestamp, test.ShouldEqual, 0)

	test.That(t, traj.Advance(), test.ShouldBeTrue)
	test.That(t, traj.Advance(), test.ShouldBeTrue)
	w, ok = traj.Current()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, w.Position, test.ShouldResemble, r2.Point{X: 3, Y: 5})

	test.That(t, traj.Advance(), test.ShouldBeFalse)
	test.That(t, traj.Done(), test.ShouldBeTrue)
	_, ok = traj.Current()
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, traj.Advance(), test.ShouldBeFalse)
	test.That(t, traj.Index(), test.ShouldEqual, 3)

	traj.Rewind()
	test.That(t, traj.Index(), test.ShouldEqual, 0)
	test.That(t, traj.Done(), test.ShouldBeFalse)
}

func TestTrajectoryImmutable(t *testing.T) {
	waypoints := testWaypoints()
	traj, err := NewTrajectory(Linear, waypoints)
	test.That(t, err, test.ShouldBeNil)

	waypoints[0].Angles[0] = 9
	got := traj.Waypoints()
	test.That(t, got[0].Angles[0], test.ShouldEqual, 0)

	got[1].Angles[0] = 9
	w, err := traj.Waypoint(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, w.Angles[0], test.ShouldEqual, 0.1)

	w.Angles[1] = 9
	cur, _ := traj.Current()
	test.That(t, cur.Angles, test.ShouldResemble, []float64{0, 0})

	_, err = traj.Waypoint(3)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = traj.Waypoint(-1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestTrajectoryMeasures(t *testing.T) {
	traj, err := NewTrajectory(Curved, testWaypoints())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.PathLength(), test.ShouldAlmostEqual, 6)
	test.That(t, traj.Duration(), test.ShouldEqual, 2)
	test.That(t, traj.Positions(), test.ShouldResemble, []r2.Point{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 5}})
	test.That(t, traj.String(), test.ShouldContainSubstring, "curved trajectory, 3 waypoints")
}

func TestNewTrajectoryErrors(t *testing.T) {
	_, err := NewTrajectory(Linear, nil)
	test.That(t, err, test.ShouldNotBeNil)

	waypoints := testWaypoints()
	waypoints[2].Timestamp = 0.5
	_, err = NewTrajectory(Linear, waypoints)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "waypoint 2")
}
