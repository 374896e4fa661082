package cli

import (
	"fmt"
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/planarkin/kinematics"
	"go.viam.com/planarkin/motionplan"
	"go.viam.com/planarkin/utils"
)

// positionsTable lists each segment's joint angle and the position of its far end.
func positionsTable(angles []float64, positions []r2.Point) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Angle (rad)", "Angle (deg)", "X", "Y"})
	for i, p := range positions {
		t.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.4f", angles[i]),
			fmt.Sprintf("%.2f", utils.RadToDeg(angles[i])),
			fmt.Sprintf("%.4f", p.X),
			fmt.Sprintf("%.4f", p.Y),
		})
	}
	return t.Render()
}

// ForwardKinematicsAction prints the joint positions for the given angles.
func ForwardKinematicsAction(c *cli.Context) error {
	cfg, err := loadArmConfig(c)
	if err != nil {
		return err
	}
	angles, err := parseAngles(c, anglesFlag, cfg)
	if err != nil {
		return err
	}
	positions, err := kinematics.ForwardKinematics(cfg, angles)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", positionsTable(angles, positions))
	printf(c.App.Writer, "end effector: %s", formatPoint(kinematics.EndEffector(positions)))
	return nil
}

// ReachAction reports whether the target passes the reachability test.
func ReachAction(c *cli.Context) error {
	cfg, err := loadArmConfig(c)
	if err != nil {
		return err
	}
	target, err := targetFromFlags(c)
	if err != nil {
		return err
	}
	if kinematics.IsReachable(cfg, target) {
		successf(c.App.Writer, "%s is reachable: %.4f from the base, max reach %.4f",
			formatPoint(target), target.Norm(), cfg.MaxReach())
		return nil
	}
	failuref(c.App.Writer, "%s is out of reach: %.4f from the base, max reach %.4f",
		formatPoint(target), target.Norm(), cfg.MaxReach())
	return nil
}

// SolveAction runs the CCD solver for the target and prints the pose and its metrics.
func SolveAction(c *cli.Context) error {
	cfg, err := loadArmConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	seed, err := parseAngles(c, seedFlag, cfg)
	if err != nil {
		return err
	}
	ik, err := kinematics.NewCCDSolver(cfg, logger.Sublogger("ccd"))
	if err != nil {
		return err
	}

	target, err := targetFromFlags(c)
	if err != nil {
		return err
	}
	sol, err := ik.Solve(target, seed)
	if errors.Is(err, kinematics.ErrTargetUnreachable) {
		failuref(c.App.Writer, "%s is out of reach (max reach %.4f)", formatPoint(target), cfg.MaxReach())
		return err
	}
	if err != nil {
		return err
	}

	movementTime, err := motionplan.EstimateMovementTime(seed, sol.Angles)
	if err != nil {
		return err
	}
	//nolint:gosec
	scorer := motionplan.NewRandomEfficiencyScorer(rand.New(rand.NewSource(c.Int64(rngSeedFlag))))

	printf(c.App.Writer, "%s", positionsTable(sol.Angles, sol.Positions))
	printf(c.App.Writer, "angles: %s", formatAngles(c, sol.Angles))
	printf(c.App.Writer, "end effector: %s", formatPoint(sol.EndEffector()))
	printf(c.App.Writer, "iterations: %d", sol.Iterations)
	printf(c.App.Writer, "residual: %.6f", sol.Residual)
	printf(c.App.Writer, "movement time: %.4fs", movementTime)
	printf(c.App.Writer, "efficiency score: %.2f", scorer.Score(cfg, target, sol.Angles))
	if sol.Converged {
		successf(c.App.Writer, "converged")
	} else {
		warningf(c.App.Writer, "did not converge within %d iterations; showing the closest pose found", sol.Iterations)
	}
	return nil
}
