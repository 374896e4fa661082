package motionplan

import (
	"math/rand"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/planarkin/logging"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
)

const (
	// DefaultSteps is the number of intervals a trajectory is split into when none is given.
	DefaultSteps = 20
	// TotalDuration is the time in seconds every trajectory takes from first to last waypoint.
	TotalDuration = 2.0

	// curved paths bend through a midpoint moved up to this far along each axis.
	midpointJitter = 1.0
	// suggested angles drift up to this far from the reference pose by the end of the path.
	angleDrift = 0.2

	defaultRandomSeed = 1
)

// PathType selects the shape of a planned path.
type PathType int

const (
	// Linear paths interpolate straight from start to end.
	Linear PathType = iota
	// Curved paths follow a quadratic Bezier curve through a randomly offset midpoint.
	Curved
)

func (p PathType) String() string {
	switch p {
	case Linear:
		return "linear"
	case Curved:
		return "curved"
	default:
		return "unknown"
	}
}

// PathTypeFromString parses "linear" or "curved", ignoring case.
func PathTypeFromString(s string) (PathType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "curved":
		return Curved, nil
	default:
		return Linear, errors.Errorf("unknown path type %q, expected linear or curved", s)
	}
}

// Planner generates trajectories for an arm. A planner is not safe for concurrent use: it owns a random source.
type Planner struct {
	cfg    *referenceframe.ArmConfig
	rng    *rand.Rand
	logger logging.Logger
}

// NewPlanner creates a planner drawing its randomness from rng. A nil rng gets a fixed seed so that plans are
// reproducible by default.
func NewPlanner(cfg *referenceframe.ArmConfig, rng *rand.Rand, logger logging.Logger) (*Planner, error) {
	if cfg == nil {
		return nil, errors.New("arm config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid arm config")
	}
	if rng == nil {
		//nolint:gosec
		rng = rand.New(rand.NewSource(defaultRandomSeed))
	}
	if logger == nil {
		logger = logging.NewBlankLogger("planner")
	}
	return &Planner{cfg: cfg, rng: rng, logger: logger}, nil
}

// PlanTrajectory samples steps+1 waypoints from start to end. steps <= 0 uses DefaultSteps.
//
// Positions follow the path type. Angles start at referenceAngles and drift by a random amount per joint,
// reaching the full drift at the end of the path, and are clamped to the joint limits. The angles are not
// solved for the waypoint positions.
func (mp *Planner) PlanTrajectory(
	start, end r2.Point,
	pathType PathType,
	referenceAngles []float64,
	steps int,
) (*Trajectory, error) {
	if err := mp.cfg.CheckDoF(referenceAngles); err != nil {
		return nil, err
	}
	if steps <= 0 {
		steps = DefaultSteps
	}

	var position func(t float64) r2.Point
	switch pathType {
	case Linear:
		position = func(t float64) r2.Point {
			return spatialmath.Lerp(start, end, t)
		}
	case Curved:
		jitter := r2.Point{X: mp.uniform(midpointJitter), Y: mp.uniform(midpointJitter)}
		control := spatialmath.Midpoint(start, end).Add(jitter)
		position = func(t float64) r2.Point {
			return spatialmath.QuadraticBezier(start, control, end, t)
		}
	default:
		return nil, errors.Errorf("unknown path type %d", pathType)
	}

	limits := mp.cfg.JointLimits
	waypoints := make([]Waypoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		angles := make([]float64, len(referenceAngles))
		for j, ref := range referenceAngles {
			angles[j] = limits[j].Clamp(ref + t*mp.uniform(angleDrift))
		}
		waypoints = append(waypoints, Waypoint{
			Position:  position(t),
			Angles:    angles,
			Timestamp: t * TotalDuration,
		})
	}
	mp.logger.Debugw("planned trajectory", "path", pathType, "start", start, "end", end, "waypoints", len(waypoints))
	return NewTrajectory(pathType, waypoints)
}

// uniform draws from [-bound, bound).
func (mp *Planner) uniform(bound float64) float64 {
	return (mp.rng.Float64()*2 - 1) * bound
}
