package cli

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/golang/geo/r2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"go.viam.com/planarkin/kinematics"
	"go.viam.com/planarkin/logging"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/utils"
)

// SweepResult summarizes solving every reachable point of a grid.
type SweepResult struct {
	Targets   int
	Converged int
	// Residuals holds one entry per target, in grid order.
	Residuals []float64
	// Stuck lists targets that pass the reachability test but were not reached.
	Stuck []r2.Point
}

// Sweep solves every grid point within reach, spaced resolution apart, starting each solve from the resting
// pose. Targets are solved in parallel.
func Sweep(ctx context.Context, cfg *referenceframe.ArmConfig, resolution float64, logger logging.Logger) (*SweepResult, error) {
	if !(resolution > 0) {
		return nil, errors.Errorf("resolution must be positive, got %v", resolution)
	}
	ik, err := kinematics.NewCCDSolver(cfg, logger)
	if err != nil {
		return nil, err
	}
	reach := cfg.MaxReach()
	n := int(math.Floor(reach / resolution))
	rest := referenceframe.DefaultJointAngles(cfg.DoF())

	var targets []r2.Point
	for i := -n; i <= n; i++ {
		for j := -n; j <= n; j++ {
			target := r2.Point{X: float64(i) * resolution, Y: float64(j) * resolution}
			if kinematics.IsReachable(cfg, target) {
				targets = append(targets, target)
			}
		}
	}

	residuals := make([]float64, len(targets))
	converged := make([]bool, len(targets))
	err = utils.GroupWorkParallel(ctx, len(targets), func(_, _, _, _ int) utils.MemberWorkFunc {
		return func(_, workNum int) error {
			sol, err := ik.Solve(targets[workNum], rest)
			if err != nil {
				return err
			}
			residuals[workNum] = sol.Residual
			converged[workNum] = sol.Converged
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	res := &SweepResult{Targets: len(targets), Residuals: residuals}
	for i, ok := range converged {
		if ok {
			res.Converged++
		} else {
			res.Stuck = append(res.Stuck, targets[i])
		}
	}
	return res, nil
}

// Summary holds residual statistics for a sweep.
type Summary struct {
	Mean, Median, P95, Max float64
}

// Summarize computes residual statistics.
func (r *SweepResult) Summarize() (Summary, error) {
	var s Summary
	var err error
	if s.Mean, err = stats.Mean(r.Residuals); err != nil {
		return Summary{}, err
	}
	if s.Median, err = stats.Median(r.Residuals); err != nil {
		return Summary{}, err
	}
	if s.P95, err = stats.Percentile(r.Residuals, 95); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(r.Residuals); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// PlotResiduals writes a histogram of the residuals. The format follows the file extension.
func (r *SweepResult) PlotResiduals(path string) error {
	p := plot.New()
	p.Title.Text = "CCD residuals"
	p.X.Label.Text = "distance to target"
	p.Y.Label.Text = "targets"
	h, err := plotter.NewHist(plotter.Values(r.Residuals), 25)
	if err != nil {
		return err
	}
	p.Add(h)
	return errors.Wrapf(p.Save(6*vg.Inch, 4*vg.Inch, path), "writing %s", path)
}

// FprintHistogram writes a text histogram of the residuals to w.
func (r *SweepResult) FprintHistogram(w io.Writer, bins int) error {
	return histogram.Fprint(w, histogram.Hist(bins, r.Residuals), histogram.Linear(40))
}

// SweepAction runs Sweep and prints a summary.
func SweepAction(c *cli.Context) error {
	cfg, err := loadArmConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	res, err := Sweep(c.Context, cfg, c.Float64(resolutionFlag), logger.Sublogger("ccd"))
	if err != nil {
		return err
	}
	if res.Targets == 0 {
		return errors.New("no grid points fall within reach; use a smaller resolution")
	}
	summary, err := res.Summarize()
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Targets", "Converged", "Mean", "Median", "P95", "Max"})
	t.AppendRow(table.Row{
		res.Targets,
		res.Converged,
		fmt.Sprintf("%.5f", summary.Mean),
		fmt.Sprintf("%.5f", summary.Median),
		fmt.Sprintf("%.5f", summary.P95),
		fmt.Sprintf("%.5f", summary.Max),
	})
	printf(c.App.Writer, "%s", t.Render())
	if c.Bool(histogramFlag) {
		if err := res.FprintHistogram(c.App.Writer, 10); err != nil {
			return err
		}
	}
	if len(res.Stuck) > 0 {
		warningf(c.App.Writer, "%d of %d targets pass the reachability test but were not reached within the joint limits",
			len(res.Stuck), res.Targets)
	}

	if path := c.Path(plotFlag); path != "" {
		if err := res.PlotResiduals(path); err != nil {
			return err
		}
		successf(c.App.Writer, "wrote %s", path)
	}
	return nil
}
