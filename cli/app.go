// Package cli contains the planarkin command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	configFlag     = "config"
	debugFlag      = "debug"
	logLevelFlag   = "log-level"
	logFileFlag    = "log-file"
	anglesFlag     = "angles"
	degreesFlag    = "degrees"
	xFlag          = "x"
	yFlag          = "y"
	seedFlag       = "seed"
	pathFlag       = "path"
	stepsFlag      = "steps"
	rngSeedFlag    = "rng-seed"
	outFlag        = "out"
	widthFlag      = "width"
	heightFlag     = "height"
	resolutionFlag = "resolution"
	plotFlag       = "plot"
	histogramFlag  = "histogram"
	obstacleFlag   = "obstacle"
)

func targetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:     xFlag,
			Required: true,
			Usage:    "target x coordinate",
		},
		&cli.Float64Flag{
			Name:     yFlag,
			Required: true,
			Usage:    "target y coordinate",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "planarkin",
		Usage:           "solve and plan motions for planar serial arms",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "load the arm model from `FILE`; the default three segment arm is used otherwise",
			},
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringSliceFlag{
				Name:  logLevelFlag,
				Usage: "set the level of matching loggers, as `PATTERN=LEVEL` (for example planarkin.ccd=debug)",
			},
			&cli.PathFlag{
				Name:  logFileFlag,
				Usage: "write logs to `FILE`, rotating it as it grows, instead of stderr",
			},
		},
		Before: openLogFile,
		After:  closeLogFile,
		Commands: []*cli.Command{
			{
				Name:  "fk",
				Usage: "compute joint positions for a set of joint angles",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  anglesFlag,
						Usage: "comma separated joint angles; defaults to the resting pose",
					},
					&cli.BoolFlag{
						Name:  degreesFlag,
						Usage: "read angles as degrees",
					},
				},
				Action: ForwardKinematicsAction,
			},
			{
				Name:   "reach",
				Usage:  "check whether a point is within reach of the arm",
				Flags:  targetFlags(),
				Action: ReachAction,
			},
			{
				Name:  "solve",
				Usage: "solve for joint angles that place the end effector at a point",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  seedFlag,
						Usage: "comma separated joint angles to start from; defaults to the resting pose",
					},
					&cli.BoolFlag{
						Name:  degreesFlag,
						Usage: "read and print angles as degrees",
					},
					&cli.Int64Flag{
						Name:  rngSeedFlag,
						Value: 1,
						Usage: "seed for the efficiency score",
					},
				}, targetFlags()...),
				Action: SolveAction,
			},
			{
				Name:  "plan",
				Usage: "plan a trajectory from the resting end effector to a point",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  pathFlag,
						Value: "linear",
						Usage: "path shape: linear or curved",
					},
					&cli.IntFlag{
						Name:  stepsFlag,
						Usage: "number of intervals; zero uses the default",
					},
					&cli.Int64Flag{
						Name:  rngSeedFlag,
						Value: 1,
						Usage: "seed for the curve and angle drift",
					},
				}, targetFlags()...),
				Action: PlanAction,
			},
			{
				Name:  "render",
				Usage: "solve for a point and draw the result to a PNG",
				Flags: append([]cli.Flag{
					&cli.PathFlag{
						Name:  outFlag,
						Value: "arm.png",
						Usage: "output `FILE`",
					},
					&cli.StringFlag{
						Name:  pathFlag,
						Usage: "also plan and draw a linear or curved trajectory",
					},
					&cli.StringSliceFlag{
						Name:  obstacleFlag,
						Usage: "draw an obstacle, as `X:Y:RADIUS`",
					},
					&cli.IntFlag{
						Name:  widthFlag,
						Value: 800,
						Usage: "image width in pixels",
					},
					&cli.IntFlag{
						Name:  heightFlag,
						Value: 600,
						Usage: "image height in pixels",
					},
					&cli.Int64Flag{
						Name:  rngSeedFlag,
						Value: 1,
						Usage: "seed for the curve, angle drift and efficiency score",
					},
				}, targetFlags()...),
				Action: RenderAction,
			},
			{
				Name:  "sweep",
				Usage: "solve a grid of reachable points and summarize how well the solver does",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  resolutionFlag,
						Value: 0.25,
						Usage: "grid spacing",
					},
					&cli.BoolFlag{
						Name:  histogramFlag,
						Usage: "print a text histogram of residuals",
					},
					&cli.PathFlag{
						Name:  plotFlag,
						Usage: "write a histogram of residuals to `FILE` (png, svg or pdf)",
					},
				},
				Action: SweepAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of arm model files",
				Action: SchemaAction,
			},
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app := newApp()
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
