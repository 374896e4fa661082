package referenceframe

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Obstacle is a circular region of the plane recorded alongside an arm. Obstacles are descriptive data for
// renderers and callers; no solver or planner consults them.
type Obstacle struct {
	ID       string
	Position r2.Point
	Radius   float64
}

// NewObstacle returns an obstacle with a freshly generated ID. The radius must be positive and finite.
func NewObstacle(position r2.Point, radius float64) (Obstacle, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Obstacle{}, errors.Errorf("obstacle radius must be positive, got %v", radius)
	}
	if math.IsNaN(position.X) || math.IsNaN(position.Y) {
		return Obstacle{}, errors.New("obstacle position must be finite")
	}
	return Obstacle{ID: uuid.NewString(), Position: position, Radius: radius}, nil
}

// Contains reports whether p lies inside or on the obstacle.
func (o Obstacle) Contains(p r2.Point) bool {
	return p.Sub(o.Position).Norm() <= o.Radius
}

// WorldState is a struct to store the data representation of the arm's environment.
type WorldState struct {
	obstacles []Obstacle
}

// NewWorldState returns a world state holding the given obstacles.
func NewWorldState(obstacles ...Obstacle) *WorldState {
	return &WorldState{obstacles: append([]Obstacle(nil), obstacles...)}
}

// AddObstacle records an obstacle.
func (ws *WorldState) AddObstacle(o Obstacle) {
	ws.obstacles = append(ws.obstacles, o)
}

// RemoveObstacle drops the obstacle with the given ID, reporting whether one was found.
func (ws *WorldState) RemoveObstacle(id string) bool {
	for i, o := range ws.obstacles {
		if o.ID == id {
			ws.obstacles = append(ws.obstacles[:i], ws.obstacles[i+1:]...)
			return true
		}
	}
	return false
}

// Obstacles returns a copy of the recorded obstacles in insertion order.
func (ws *WorldState) Obstacles() []Obstacle {
	return append([]Obstacle(nil), ws.obstacles...)
}

// Len returns the number of recorded obstacles.
func (ws *WorldState) Len() int {
	return len(ws.obstacles)
}
