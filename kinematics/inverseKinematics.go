package kinematics

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/planarkin/logging"
	"go.viam.com/planarkin/referenceframe"
)

// ErrTargetUnreachable is returned, wrapped, when a target lies outside the arm's reach. Match it with errors.Is.
var ErrTargetUnreachable = errors.New("target is out of reach")

// InverseKinematics solves for joint angles that place the end effector at a target.
type InverseKinematics interface {
	// Solve receives the goal position and the joint angles to start from. It returns the joint angles and
	// their positions, or an error if no attempt could be made. Running out of iterations is not an error.
	Solve(target r2.Point, seed []float64) (*Solution, error)
}

// Solution is the result of an inverse kinematics solve.
type Solution struct {
	Angles    []float64
	Positions []r2.Point
	// Iterations is the number of full joint sweeps performed.
	Iterations int
	// Converged is false when the iteration budget ran out first. The angles are still the best found.
	Converged bool
	// Residual is the distance from the end effector to the target.
	Residual float64
}

// EndEffector returns the end effector position of the solution.
func (s *Solution) EndEffector() r2.Point {
	return EndEffector(s.Positions)
}

// SolveInverseKinematics runs a CCD solver with default settings.
func SolveInverseKinematics(cfg *referenceframe.ArmConfig, target r2.Point, seed []float64) (*Solution, error) {
	ik, err := NewCCDSolver(cfg, logging.NewBlankLogger("ccd"))
	if err != nil {
		return nil, err
	}
	return ik.Solve(target, seed)
}

func newUnreachableError(target r2.Point, reach float64) error {
	return errors.Wrapf(ErrTargetUnreachable, "target %v is %.4g from the base, max reach is %.4g", target, target.Norm(), reach)
}
