// Package motionplan turns a start and end point into a timed series of arm waypoints, and estimates what
// those motions cost.
package motionplan

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/planarkin/spatialmath"
)

// Waypoint is a single sample along a trajectory.
type Waypoint struct {
	Position r2.Point
	// Angles are a suggestion derived from the reference pose, not a solution for Position.
	Angles    []float64
	Timestamp float64
}

func (w Waypoint) copyAngles() Waypoint {
	w.Angles = append([]float64(nil), w.Angles...)
	return w
}

// Trajectory is an ordered, immutable set of waypoints with a playback cursor. Accessors return copies so that
// callers cannot change the waypoints out from under the cursor.
type Trajectory struct {
	pathType  PathType
	waypoints []Waypoint
	cursor    int
}

// NewTrajectory wraps waypoints in a trajectory. The waypoints are copied.
func NewTrajectory(pathType PathType, waypoints []Waypoint) (*Trajectory, error) {
	if len(waypoints) == 0 {
		return nil, errors.New("a trajectory needs at least one waypoint")
	}
	for i := 1; i < len(waypoints); i++ {
		if waypoints[i].Timestamp < waypoints[i-1].Timestamp {
			return nil, errors.Errorf("waypoint %d timestamp %v is before the previous waypoint's %v",
				i, waypoints[i].Timestamp, waypoints[i-1].Timestamp)
		}
	}
	copied := make([]Waypoint, 0, len(waypoints))
	for _, w := range waypoints {
		copied = append(copied, w.copyAngles())
	}
	return &Trajectory{pathType: pathType, waypoints: copied}, nil
}

// PathType returns the kind of path the trajectory follows.
func (traj *Trajectory) PathType() PathType {
	return traj.pathType
}

// Len returns the number of waypoints.
func (traj *Trajectory) Len() int {
	return len(traj.waypoints)
}

// Waypoint returns a copy of the waypoint at index i.
func (traj *Trajectory) Waypoint(i int) (Waypoint, error) {
	if i < 0 || i >= len(traj.waypoints) {
		return Waypoint{}, errors.Errorf("could not access waypoint %d, must be less than %d", i, len(traj.waypoints))
	}
	return traj.waypoints[i].copyAngles(), nil
}

// Waypoints returns a copy of every waypoint.
func (traj *Trajectory) Waypoints() []Waypoint {
	waypoints := make([]Waypoint, 0, len(traj.waypoints))
	for _, w := range traj.waypoints {
		waypoints = append(waypoints, w.copyAngles())
	}
	return waypoints
}

// Positions returns the position of every waypoint.
func (traj *Trajectory) Positions() []r2.Point {
	positions := make([]r2.Point, 0, len(traj.waypoints))
	for _, w := range traj.waypoints {
		positions = append(positions, w.Position)
	}
	return positions
}

// Duration returns the timestamp of the last waypoint.
func (traj *Trajectory) Duration() float64 {
	return traj.waypoints[len(traj.waypoints)-1].Timestamp
}

// PathLength is the length of the polyline through every waypoint position.
func (traj *Trajectory) PathLength() float64 {
	total := 0.
	for i := 1; i < len(traj.waypoints); i++ {
		total += spatialmath.Distance(traj.waypoints[i-1].Position, traj.waypoints[i].Position)
	}
	return total
}

// Current returns the waypoint under the cursor. ok is false once playback is done.
func (traj *Trajectory) Current() (w Waypoint, ok bool) {
	if traj.Done() {
		return Waypoint{}, false
	}
	return traj.waypoints[traj.cursor].copyAngles(), true
}

// Advance moves the cursor to the next waypoint, returning false if there was none left.
func (traj *Trajectory) Advance() bool {
	if traj.Done() {
		return false
	}
	traj.cursor++
	return !traj.Done()
}

// Done reports whether the cursor has moved past the last waypoint.
func (traj *Trajectory) Done() bool {
	return traj.cursor >= len(traj.waypoints)
}

// Rewind moves the cursor back to the first waypoint.
func (traj *Trajectory) Rewind() {
	traj.cursor = 0
}

// Index returns the position of the cursor.
func (traj *Trajectory) Index() int {
	return traj.cursor
}

// String returns a human-readable version of the trajectory, suitable for debugging.
func (traj *Trajectory) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s trajectory, %d waypoints", traj.pathType, len(traj.waypoints))
	for _, w := range traj.waypoints {
		fmt.Fprintf(&sb, "\n%.3fs: (%.4f, %.4f) %v", w.Timestamp, w.Position.X, w.Position.Y, w.Angles)
	}
	return sb.String()
}
