package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"go.viam.com/planarkin/logging"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/utils"
)

// printf prints a message with no decoration.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// infof prints a message prefixed with a bold cyan "Info: ".
func infof(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprint(w, color.New(color.Bold, color.FgCyan).Sprint("Info: "))
	printf(w, format, a...)
}

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprint(w, color.New(color.Bold, color.FgYellow).Sprint("Warning: "))
	printf(w, format, a...)
}

// successf prints a message in green.
func successf(w io.Writer, format string, a ...interface{}) {
	printf(w, "%s", color.GreenString(format, a...))
}

// failuref prints a message in red.
func failuref(w io.Writer, format string, a ...interface{}) {
	printf(w, "%s", color.RedString(format, a...))
}

// newLogger builds the logger for a command run. Logs go to the app's error writer so that command output
// stays clean.
func newLogger(c *cli.Context) (logging.Logger, error) {
	level := logging.INFO
	if c.Bool(debugFlag) {
		level = logging.DEBUG
	}
	var out io.Writer = c.App.ErrWriter
	if f, ok := c.App.Metadata[logFileFlag].(*lumberjack.Logger); ok {
		out = f
	}
	registry := logging.NewRegistry()
	logger := registry.Track(logging.NewWriterLogger("planarkin", level, out))

	patterns := c.StringSlice(logLevelFlag)
	if len(patterns) == 0 {
		return logger, nil
	}
	configs := make([]logging.LoggerPatternConfig, 0, len(patterns))
	for _, p := range patterns {
		lpc, err := logging.ParsePatternConfig(p)
		if err != nil {
			return nil, err
		}
		configs = append(configs, lpc)
	}
	if err := registry.UpdateConfig(configs, logger); err != nil {
		return nil, err
	}
	return logger, nil
}

const (
	logFileMaxMegabytes = 10
	logFileMaxBackups   = 3
)

func openLogFile(c *cli.Context) error {
	path := c.Path(logFileFlag)
	if path == "" {
		return nil
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[logFileFlag] = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxMegabytes,
		MaxBackups: logFileMaxBackups,
	}
	return nil
}

func closeLogFile(c *cli.Context) error {
	f, ok := c.App.Metadata[logFileFlag].(*lumberjack.Logger)
	if !ok {
		return nil
	}
	delete(c.App.Metadata, logFileFlag)
	return f.Close()
}

// loadArmConfig reads the --config model file, or returns the default arm.
func loadArmConfig(c *cli.Context) (*referenceframe.ArmConfig, error) {
	path := c.Path(configFlag)
	if path == "" {
		return referenceframe.DefaultArmConfig(), nil
	}
	return referenceframe.ParseModelJSONFile(path)
}

// parseFloats parses a comma separated list of numbers.
func parseFloats(raw string) ([]float64, error) {
	return splitFloats(raw, ",")
}

func splitFloats(raw, sep string) ([]float64, error) {
	fields := lo.Map(strings.Split(raw, sep), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
	values := make([]float64, 0, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "value %d of %q", i, raw)
		}
		if !utils.IsFinite(v) {
			return nil, errors.Errorf("value %d of %q must be finite", i, raw)
		}
		values = append(values, v)
	}
	return values, nil
}

// parseAngles reads a joint angle flag, falling back to the resting pose when it is unset.
func parseAngles(c *cli.Context, flag string, cfg *referenceframe.ArmConfig) ([]float64, error) {
	raw := c.String(flag)
	if raw == "" {
		return referenceframe.DefaultJointAngles(cfg.DoF()), nil
	}
	angles, err := parseFloats(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing --%s", flag)
	}
	if c.Bool(degreesFlag) {
		angles = lo.Map(angles, func(a float64, _ int) float64 { return utils.DegToRad(a) })
	}
	if err := cfg.CheckDoF(angles); err != nil {
		return nil, errors.Wrapf(err, "parsing --%s", flag)
	}
	return angles, nil
}

// formatAngles prints angles in radians, or degrees if the degrees flag is set.
func formatAngles(c *cli.Context, angles []float64) string {
	return strings.Join(lo.Map(angles, func(a float64, _ int) string {
		if c.Bool(degreesFlag) {
			return strconv.FormatFloat(utils.RadToDeg(a), 'f', 2, 64)
		}
		return strconv.FormatFloat(a, 'f', 4, 64)
	}), ", ")
}

func formatPoint(p r2.Point) string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}

func targetFromFlags(c *cli.Context) (r2.Point, error) {
	target := r2.Point{X: c.Float64(xFlag), Y: c.Float64(yFlag)}
	if !utils.IsFinite(target.X, target.Y) {
		return r2.Point{}, errors.Errorf("target %v must be finite", target)
	}
	return target, nil
}

// parseObstacle parses "x:y:radius". Commas are taken by the slice flag separator.
func parseObstacle(raw string) (r2.Point, float64, error) {
	values, err := splitFloats(raw, ":")
	if err != nil {
		return r2.Point{}, 0, err
	}
	if len(values) != 3 {
		return r2.Point{}, 0, errors.Errorf("obstacle %q must be x:y:radius", raw)
	}
	return r2.Point{X: values[0], Y: values[1]}, values[2], nil
}

// Errorf prints a message prefixed with a bold red "Error: ".
func Errorf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprint(w, color.New(color.Bold, color.FgRed).Sprint("Error: "))
	printf(w, format, a...)
}
