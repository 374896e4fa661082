package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/planarkin/kinematics"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp(&out, &errOut)
	err := app.Run(append([]string{"planarkin"}, args...))
	return out.String(), errOut.String(), err
}

func TestForwardKinematicsCommand(t *testing.T) {
	out, _, err := runApp(t, "fk")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "end effector: (3.6213, 0.7071)")
	test.That(t, out, test.ShouldContainSubstring, "45.00")

	out, _, err = runApp(t, "fk", "--angles", "0, 0, 0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "end effector: (0.0000, 4.5000)")

	out, _, err = runApp(t, "fk", "--degrees", "--angles", "90,90,0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "end effector: (2.0000, -2.5000)")

	_, _, err = runApp(t, "fk", "--angles", "0,0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "Expected 3, got 2")

	_, _, err = runApp(t, "fk", "--angles", "0,zero,0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join("..", "referenceframe", "testjson", "two_link_degrees.json")
	out, _, err := runApp(t, "--config", path, "fk")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "end effector: (1.7071, 0.7071)")

	out, _, err = runApp(t, "--config", path, "reach", "--x", "2", "--y", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "is reachable")

	_, _, err = runApp(t, "--config", filepath.Join(t.TempDir(), "missing.json"), "fk")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, "--config", filepath.Join("..", "referenceframe", "testjson", "mismatched.json"), "fk")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestReachCommand(t *testing.T) {
	out, _, err := runApp(t, "reach", "--x", "4.5", "--y", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "is reachable")

	out, _, err = runApp(t, "reach", "--x", "4.50001", "--y", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "is out of reach")

	_, _, err = runApp(t, "reach", "--x", "1")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, "reach", "--x", "NaN", "--y", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "must be finite")
	_, _, err = runApp(t, "solve", "--x", "0", "--y", "Inf")
	test.That(t, err, test.ShouldNotBeNil)
	_, _, err = runApp(t, "render", "--x", "NaN", "--y", "0", "--out", filepath.Join(t.TempDir(), "nan.png"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSolveCommand(t *testing.T) {
	out, errOut, err := runApp(t, "solve", "--x", "3", "--y", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "iterations: 2")
	test.That(t, out, test.ShouldContainSubstring, "converged")
	test.That(t, out, test.ShouldContainSubstring, "movement time:")
	test.That(t, out, test.ShouldContainSubstring, "efficiency score:")
	test.That(t, errOut, test.ShouldBeEmpty)

	out, _, err = runApp(t, "solve", "--x", "0", "--y", "3")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "did not converge within 50 iterations")

	out, _, err = runApp(t, "solve", "--x", "10", "--y", "10")
	test.That(t, errors.Is(err, kinematics.ErrTargetUnreachable), test.ShouldBeTrue)
	test.That(t, out, test.ShouldContainSubstring, "out of reach")

	// debug logging goes to the error writer
	out, errOut, err = runApp(t, "--debug", "solve", "--x", "3", "--y", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "ccd converged")
	test.That(t, out, test.ShouldNotContainSubstring, "ccd converged")

	_, errOut, err = runApp(t, "--log-level", "planarkin.ccd=debug", "solve", "--x", "3", "--y", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "ccd converged")

	_, _, err = runApp(t, "--log-level", "planarkin.ccd", "solve", "--x", "3", "--y", "0")
	test.That(t, err, test.ShouldNotBeNil)

	logPath := filepath.Join(t.TempDir(), "planarkin.log")
	_, errOut, err = runApp(t, "--debug", "--log-file", logPath, "solve", "--x", "3", "--y", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldNotContainSubstring, "ccd converged")
	logged, err := os.ReadFile(logPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(logged), test.ShouldContainSubstring, "ccd converged")
}

func TestPlanCommand(t *testing.T) {
	out, _, err := runApp(t, "plan", "--x", "3", "--y", "0", "--steps", "4")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "linear path, 5 waypoints")
	test.That(t, out, test.ShouldContainSubstring, "2.00")

	out, _, err = runApp(t, "plan", "--x", "3", "--y", "0", "--path", "curved")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "curved path, 21 waypoints")

	out, _, err = runApp(t, "plan", "--x", "6", "--y", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "out of reach")

	_, _, err = runApp(t, "plan", "--x", "3", "--y", "0", "--path", "spline")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arm.png")
	out, _, err := runApp(t, "render", "--x", "3", "--y", "0", "--out", path, "--path", "curved",
		"--obstacle", "1:1:0.3", "--obstacle", "-2:1:0.5", "--width", "400", "--height", "300")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "wrote "+path)
	info, err := os.Stat(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)

	out, _, err = runApp(t, "render", "--x", "9", "--y", "0", "--out", filepath.Join(dir, "far.png"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "out of reach")

	out, _, err = runApp(t, "render", "--x", "3", "--y", "0", "--out", filepath.Join(dir, "blocked.png"),
		"--obstacle", "3:0:0.5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "lies inside obstacle 3:0:0.5")
	test.That(t, out, test.ShouldNotContainSubstring, "lies inside obstacle 1:1:0.3")

	_, _, err = runApp(t, "render", "--x", "3", "--y", "0", "--out", filepath.Join(dir, "bad.png"), "--obstacle", "1:1")
	test.That(t, err, test.ShouldNotBeNil)
	_, _, err = runApp(t, "render", "--x", "3", "--y", "0", "--out", filepath.Join(dir, "bad.png"), "--obstacle", "1:1:0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSweepCommand(t *testing.T) {
	plotPath := filepath.Join(t.TempDir(), "residuals.png")
	out, _, err := runApp(t, "sweep", "--resolution", "1.5", "--plot", plotPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "TARGETS")
	test.That(t, out, test.ShouldContainSubstring, "pass the reachability test but were not reached")
	_, err = os.Stat(plotPath)
	test.That(t, err, test.ShouldBeNil)

	plain, _, err := runApp(t, "sweep", "--resolution", "1.5")
	test.That(t, err, test.ShouldBeNil)
	withHist, _, err := runApp(t, "sweep", "--resolution", "1.5", "--histogram")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, withHist, test.ShouldContainSubstring, "TARGETS")
	test.That(t, len(withHist), test.ShouldBeGreaterThan, len(plain))

	_, _, err = runApp(t, "sweep", "--resolution", "0")
	test.That(t, err, test.ShouldNotBeNil)
	_, _, err = runApp(t, "sweep", "--resolution", "-1")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := runApp(t, "schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "segment_lengths")
	test.That(t, out, test.ShouldContainSubstring, "joint_limits")
}
