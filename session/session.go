// Package session holds the mutable state around an arm: its current pose, the last target it was sent to,
// the obstacles recorded next to it and the trajectory planned for it. The kinematics packages are pure; a
// Session is where their results are kept and where the delayed, display oriented behavior lives.
package session

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	goutils "go.viam.com/utils"

	"go.viam.com/planarkin/kinematics"
	"go.viam.com/planarkin/logging"
	"go.viam.com/planarkin/motionplan"
	"go.viam.com/planarkin/referenceframe"
)

// DefaultDisplayDelay is how long SetTargetAsync waits before solving, so a display can show the pending
// target first.
const DefaultDisplayDelay = 500 * time.Millisecond

// ErrNoTarget is returned by operations that need a target before one has been set.
var ErrNoTarget = errors.New("no target has been set")

// Result is the outcome of sending the arm to a target.
type Result struct {
	Target    r2.Point
	Reachable bool
	// Solution is nil when the target was unreachable.
	Solution        *kinematics.Solution
	EfficiencyScore float64
	MovementTime    float64
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used for the display delay.
func WithClock(clk clock.Clock) Option {
	return func(s *Session) {
		s.clock = clk
	}
}

// WithDisplayDelay sets how long SetTargetAsync waits before solving.
func WithDisplayDelay(d time.Duration) Option {
	return func(s *Session) {
		s.displayDelay = d
	}
}

// WithRand sets the random source shared by the planner and the default scorer.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithScorer replaces the efficiency scorer.
func WithScorer(scorer motionplan.EfficiencyScorer) Option {
	return func(s *Session) {
		s.scorer = scorer
	}
}

// WithSolverOptions passes options through to the CCD solver.
func WithSolverOptions(opts ...kinematics.CCDOption) Option {
	return func(s *Session) {
		s.solverOpts = append(s.solverOpts, opts...)
	}
}

// A Session is the state of one arm. It is safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	cfg    *referenceframe.ArmConfig
	logger logging.Logger

	clock        clock.Clock
	displayDelay time.Duration
	rng          *rand.Rand
	scorer       motionplan.EfficiencyScorer
	solverOpts   []kinematics.CCDOption

	solver  kinematics.InverseKinematics
	planner *motionplan.Planner

	state           kinematics.ArmState
	prevAngles      []float64
	target          *r2.Point
	reachable       bool
	pending         bool
	// generation changes whenever the target does, so a delayed solve can tell it was superseded.
	generation      uint64
	efficiencyScore float64
	movementTime    float64
	world           *referenceframe.WorldState
	trajectory      *motionplan.Trajectory
}

// New creates a session for an arm resting in its default pose. A nil logger discards logs.
func New(cfg *referenceframe.ArmConfig, logger logging.Logger, opts ...Option) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("arm config is required")
	}
	if logger == nil {
		logger = logging.NewBlankLogger("session")
	}
	s := &Session{
		cfg:          cfg,
		logger:       logger,
		clock:        clock.New(),
		displayDelay: DefaultDisplayDelay,
		world:        referenceframe.NewWorldState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		//nolint:gosec
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.scorer == nil {
		s.scorer = motionplan.NewRandomEfficiencyScorer(s.rng)
	}

	solver, err := kinematics.NewCCDSolver(cfg, logger.Sublogger("ccd"), s.solverOpts...)
	if err != nil {
		return nil, err
	}
	s.solver = solver
	planner, err := motionplan.NewPlanner(cfg, s.rng, logger.Sublogger("planner"))
	if err != nil {
		return nil, err
	}
	s.planner = planner

	s.resetLocked()
	return s, nil
}

// Config returns the arm the session drives.
func (s *Session) Config() *referenceframe.ArmConfig {
	return s.cfg
}

// SetTarget sends the arm to target. The target is recorded even if it is unreachable, in which case the pose
// and metrics are left as they were. A solve that runs out of iterations still moves the arm to its best
// effort pose.
func (s *Session) SetTarget(target r2.Point) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordTargetLocked(target)
	return s.solveLocked(target)
}

// SetTargetAsync records target immediately and solves for it after the display delay. The returned channel
// receives one Result and is then closed. If ctx is done before the delay elapses, nothing is solved and the
// channel is closed without a value.
func (s *Session) SetTargetAsync(ctx context.Context, target r2.Point) <-chan Result {
	s.mu.Lock()
	s.recordTargetLocked(target)
	s.pending = true
	generation := s.generation
	delay := s.displayDelay
	s.mu.Unlock()

	results := make(chan Result, 1)
	timer := s.clock.Timer(delay)
	goutils.PanicCapturingGo(func() {
		defer close(results)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			s.logger.Debugw("pending target dropped", "target", target, "error", ctx.Err())
			s.mu.Lock()
			if s.generation == generation {
				s.pending = false
			}
			s.mu.Unlock()
			return
		case <-timer.C:
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation != generation {
			s.logger.Debugw("pending target superseded", "target", target)
			return
		}
		s.pending = false
		res, err := s.solveLocked(target)
		if err != nil {
			s.logger.Errorw("solving for target failed", "target", target, "error", err)
			return
		}
		results <- res
	})
	return results
}

func (s *Session) recordTargetLocked(target r2.Point) {
	s.generation++
	// a newer target supersedes any delayed solve, which will not clear the flag itself
	s.pending = false
	s.target = lo.ToPtr(target)
	s.reachable = kinematics.IsReachable(s.cfg, target)
}

func (s *Session) solveLocked(target r2.Point) (Result, error) {
	if !s.reachable {
		s.logger.Infow("target out of reach", "target", target, "max_reach", s.cfg.MaxReach())
		return Result{Target: target}, nil
	}

	prev := s.state.Angles()
	sol, err := s.solver.Solve(target, prev)
	if err != nil {
		return Result{}, errors.Wrapf(err, "solving for target %v", target)
	}
	movementTime, err := motionplan.EstimateMovementTime(prev, sol.Angles)
	if err != nil {
		return Result{}, err
	}

	s.state = kinematics.StateFromSolution(sol)
	s.prevAngles = prev
	s.efficiencyScore = s.scorer.Score(s.cfg, target, sol.Angles)
	s.movementTime = movementTime
	if !sol.Converged {
		s.logger.Warnw("solver did not converge, using best effort pose", "target", target, "residual", sol.Residual)
	} else {
		s.logger.Debugw("moved to target", "target", target, "iterations", sol.Iterations)
	}
	return Result{
		Target:          target,
		Reachable:       true,
		Solution:        sol,
		EfficiencyScore: s.efficiencyScore,
		MovementTime:    s.movementTime,
	}, nil
}

// Reset returns the arm to its default pose and clears the target, metrics and trajectory. Obstacles are kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.generation++
	s.state = kinematics.DefaultArmState(s.cfg)
	s.prevAngles = s.state.Angles()
	s.target = nil
	s.reachable = false
	s.pending = false
	s.efficiencyScore = 0
	s.movementTime = 0
	s.trajectory = nil
}

// AddObstacle records a circular obstacle. Obstacles are kept for display only.
func (s *Session) AddObstacle(position r2.Point, radius float64) (referenceframe.Obstacle, error) {
	obstacle, err := referenceframe.NewObstacle(position, radius)
	if err != nil {
		return referenceframe.Obstacle{}, err
	}
	s.mu.Lock()
	s.world.AddObstacle(obstacle)
	s.mu.Unlock()
	return obstacle, nil
}

// RemoveObstacle drops a recorded obstacle by ID.
func (s *Session) RemoveObstacle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.RemoveObstacle(id)
}

// PlanTrajectory plans a path from the current end effector to the target, using the current joint angles as
// the reference pose, and makes it the session's trajectory.
func (s *Session) PlanTrajectory(pathType motionplan.PathType, steps int) (*motionplan.Trajectory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == nil {
		return nil, ErrNoTarget
	}
	traj, err := s.planner.PlanTrajectory(s.state.EndEffector(), *s.target, pathType, s.state.Angles(), steps)
	if err != nil {
		return nil, err
	}
	s.trajectory = traj
	return traj, nil
}

// AdvanceTrajectory moves the trajectory cursor forward, returning the waypoint now under it. ok is false when
// there is no trajectory or playback is done.
func (s *Session) AdvanceTrajectory() (w motionplan.Waypoint, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trajectory == nil || !s.trajectory.Advance() {
		return motionplan.Waypoint{}, false
	}
	return s.trajectory.Current()
}

// Snapshot is a copy of a session's state at one moment.
type Snapshot struct {
	Config          *referenceframe.ArmConfig
	Angles          []float64
	PrevAngles      []float64
	Positions       []r2.Point
	Target          *r2.Point
	Reachable       bool
	Pending         bool
	EfficiencyScore float64
	MovementTime    float64
	Obstacles       []referenceframe.Obstacle
	Trajectory      []motionplan.Waypoint
	TrajectoryIndex int
}

// EndEffector returns the end effector position of the snapshot's pose.
func (snap Snapshot) EndEffector() r2.Point {
	return kinematics.EndEffector(snap.Positions)
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Config:          s.cfg,
		Angles:          s.state.Angles(),
		PrevAngles:      append([]float64(nil), s.prevAngles...),
		Positions:       s.state.Positions(),
		Reachable:       s.reachable,
		Pending:         s.pending,
		EfficiencyScore: s.efficiencyScore,
		MovementTime:    s.movementTime,
		Obstacles:       s.world.Obstacles(),
	}
	if s.target != nil {
		snap.Target = lo.ToPtr(*s.target)
	}
	if s.trajectory != nil {
		snap.Trajectory = s.trajectory.Waypoints()
		snap.TrajectoryIndex = s.trajectory.Index()
	}
	return snap
}
