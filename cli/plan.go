package cli

import (
	"fmt"
	"math/rand"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"go.viam.com/planarkin/kinematics"
	"go.viam.com/planarkin/motionplan"
	"go.viam.com/planarkin/render"
	"go.viam.com/planarkin/session"
)

func trajectoryTable(traj *motionplan.Trajectory) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Time (s)", "X", "Y", "Angles"})
	for i, w := range traj.Waypoints() {
		t.AppendRow(table.Row{
			i,
			fmt.Sprintf("%.2f", w.Timestamp),
			fmt.Sprintf("%.4f", w.Position.X),
			fmt.Sprintf("%.4f", w.Position.Y),
			fmt.Sprintf("%.4f", w.Angles),
		})
	}
	return t.Render()
}

// PlanAction plans a trajectory from the resting pose's end effector to the target.
func PlanAction(c *cli.Context) error {
	cfg, err := loadArmConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	pathType, err := motionplan.PathTypeFromString(c.String(pathFlag))
	if err != nil {
		return err
	}
	//nolint:gosec
	planner, err := motionplan.NewPlanner(cfg, rand.New(rand.NewSource(c.Int64(rngSeedFlag))), logger.Sublogger("planner"))
	if err != nil {
		return err
	}

	target, err := targetFromFlags(c)
	if err != nil {
		return err
	}
	if !kinematics.IsReachable(cfg, target) {
		warningf(c.App.Writer, "%s is out of reach; the arm cannot follow this path to its end", formatPoint(target))
	}
	rest := kinematics.DefaultArmState(cfg)
	traj, err := planner.PlanTrajectory(rest.EndEffector(), target, pathType, rest.Angles(), c.Int(stepsFlag))
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", trajectoryTable(traj))
	infof(c.App.Writer, "%s path, %d waypoints, %.4f long, %.2fs", traj.PathType(), traj.Len(), traj.PathLength(),
		traj.Duration())
	return nil
}

// RenderAction moves an arm to the target and draws it.
func RenderAction(c *cli.Context) error {
	cfg, err := loadArmConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	target, err := targetFromFlags(c)
	if err != nil {
		return err
	}
	//nolint:gosec
	rng := rand.New(rand.NewSource(c.Int64(rngSeedFlag)))
	s, err := session.New(cfg, logger, session.WithRand(rng))
	if err != nil {
		return err
	}
	for _, raw := range c.StringSlice(obstacleFlag) {
		position, radius, err := parseObstacle(raw)
		if err != nil {
			return err
		}
		obstacle, err := s.AddObstacle(position, radius)
		if err != nil {
			return err
		}
		if obstacle.Contains(target) {
			warningf(c.App.Writer, "%s lies inside obstacle %s; obstacles are drawn only, not avoided",
				formatPoint(target), raw)
		}
	}

	// the trajectory is planned from the resting pose, before the arm moves
	var traj *motionplan.Trajectory
	if raw := c.String(pathFlag); raw != "" {
		pathType, err := motionplan.PathTypeFromString(raw)
		if err != nil {
			return err
		}
		planner, err := motionplan.NewPlanner(cfg, rng, logger.Sublogger("planner"))
		if err != nil {
			return err
		}
		snap := s.Snapshot()
		traj, err = planner.PlanTrajectory(snap.EndEffector(), target, pathType, snap.Angles, 0)
		if err != nil {
			return err
		}
	}

	res, err := s.SetTarget(target)
	if err != nil {
		return err
	}
	snap := s.Snapshot()
	if traj != nil {
		snap.Trajectory = traj.Waypoints()
	}

	scene, err := render.NewScene(snap, render.Options{
		Width:      c.Int(widthFlag),
		Height:     c.Int(heightFlag),
		BaseMargin: float64(c.Int(heightFlag)) / 6,
	})
	if err != nil {
		return err
	}
	out := c.Path(outFlag)
	if err := scene.DrawPNG(out); err != nil {
		return err
	}
	switch {
	case !res.Reachable:
		warningf(c.App.Writer, "%s is out of reach; drew the arm at rest", formatPoint(res.Target))
	case !res.Solution.Converged:
		warningf(c.App.Writer, "solver did not converge, residual %.4f", res.Solution.Residual)
	}
	successf(c.App.Writer, "wrote %s", out)
	return nil
}
