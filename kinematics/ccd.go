package kinematics

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/planarkin/logging"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
)

const (
	// DefaultMaxIterations is the number of sweeps a CCD solve may run before returning its best effort.
	DefaultMaxIterations = 50
	// DefaultGoalThreshold is the end effector distance below which a solve has converged.
	DefaultGoalThreshold = 0.01

	// vectors shorter than this give no usable rotation for a joint.
	degenerateNorm = 1e-4
)

// CCDSolver is a cyclic coordinate descent inverse kinematics solver. It is deterministic: the same target and
// seed always produce the same solution.
type CCDSolver struct {
	cfg           *referenceframe.ArmConfig
	logger        logging.Logger
	maxIterations int
	goalThreshold float64
}

// CCDOption configures a CCDSolver.
type CCDOption func(*CCDSolver)

// WithMaxIterations sets the sweep budget. Values below 1 are ignored.
func WithMaxIterations(n int) CCDOption {
	return func(ik *CCDSolver) {
		if n > 0 {
			ik.maxIterations = n
		}
	}
}

// WithGoalThreshold sets the convergence distance. Non-positive values are ignored.
func WithGoalThreshold(threshold float64) CCDOption {
	return func(ik *CCDSolver) {
		if threshold > 0 {
			ik.goalThreshold = threshold
		}
	}
}

// NewCCDSolver creates a solver for the given arm. A nil logger discards logs.
func NewCCDSolver(cfg *referenceframe.ArmConfig, logger logging.Logger, opts ...CCDOption) (*CCDSolver, error) {
	if cfg == nil {
		return nil, errors.New("arm config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid arm config")
	}
	if logger == nil {
		logger = logging.NewBlankLogger("ccd")
	}
	ik := &CCDSolver{
		cfg:           cfg,
		logger:        logger,
		maxIterations: DefaultMaxIterations,
		goalThreshold: DefaultGoalThreshold,
	}
	for _, opt := range opts {
		opt(ik)
	}
	return ik, nil
}

// Solve runs CCD from seed toward target.
//
// Reachability is checked once before iterating; an unreachable target returns ErrTargetUnreachable. Each sweep
// visits the joints from the end effector back to the base, rotating each so the end effector swings toward
// the target, clamping it to its limit, and recomputing the arm before moving to the next joint.
func (ik *CCDSolver) Solve(target r2.Point, seed []float64) (*Solution, error) {
	if err := ik.cfg.CheckDoF(seed); err != nil {
		return nil, err
	}
	if !IsReachable(ik.cfg, target) {
		ik.logger.Debugw("target unreachable, not solving", "target", target, "max_reach", ik.cfg.MaxReach())
		return nil, newUnreachableError(target, ik.cfg.MaxReach())
	}
	ik.logger.Debugw("starting ccd solve", "target", target, "seed", seed)

	lengths := ik.cfg.SegmentLengths
	limits := ik.cfg.JointLimits
	angles := append([]float64(nil), seed...)

	for iter := 0; iter < ik.maxIterations; iter++ {
		positions := forward(lengths, angles)
		endEffector := EndEffector(positions)

		if residual := endEffector.Sub(target).Norm(); residual < ik.goalThreshold {
			ik.logger.Debugw("ccd converged", "iterations", iter, "residual", residual)
			return &Solution{
				Angles:     angles,
				Positions:  positions,
				Iterations: iter,
				Converged:  true,
				Residual:   residual,
			}, nil
		}

		for i := len(angles) - 1; i >= 0; i-- {
			joint := jointOrigin(positions, i)
			toEndEffector := endEffector.Sub(joint)
			toTarget := target.Sub(joint)

			adjustment, ok := spatialmath.AngleBetween(toEndEffector, toTarget, degenerateNorm)
			if !ok {
				continue
			}
			// positive angles bend clockwise, so the clockwise cross product gives the direction toward the target
			if spatialmath.CrossCW(toEndEffector, toTarget) < 0 {
				adjustment = -adjustment
			}
			angles[i] = limits[i].Clamp(angles[i] + adjustment)

			// Joints closer to the base must see this joint's new position within the same sweep.
			positions = forward(lengths, angles)
			endEffector = EndEffector(positions)
		}
	}

	positions := forward(lengths, angles)
	residual := PositionError(positions, target)
	ik.logger.Debugw("ccd iteration budget exhausted", "iterations", ik.maxIterations, "residual", residual)
	return &Solution{
		Angles:     angles,
		Positions:  positions,
		Iterations: ik.maxIterations,
		// the final sweep may have landed inside the threshold without a check to notice it
		Converged: residual < ik.goalThreshold,
		Residual:  residual,
	}, nil
}
