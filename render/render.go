// Package render draws an arm session to an image. Nothing in the kinematics packages depends on it.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"go.viam.com/planarkin/session"
	"go.viam.com/planarkin/utils"
)

var (
	backgroundColor   = color.RGBA{15, 23, 42, 255}
	gridColor         = color.RGBA{100, 116, 139, 51}
	axisColor         = color.RGBA{100, 116, 139, 128}
	labelColor        = color.RGBA{148, 163, 184, 255}
	reachColor        = color.RGBA{139, 92, 246, 77}
	obstacleFill      = color.RGBA{239, 68, 68, 51}
	obstacleStroke    = color.RGBA{239, 68, 68, 204}
	trajectoryColor   = color.RGBA{59, 130, 246, 128}
	waypointColor     = color.RGBA{100, 116, 139, 255}
	lastWaypointColor = color.RGBA{236, 72, 153, 255}
	currentStepColor  = color.RGBA{59, 130, 246, 255}
	reachableColor    = color.RGBA{74, 222, 128, 255}
	unreachableColor  = color.RGBA{239, 68, 68, 255}
	linkColor         = color.RGBA{100, 116, 139, 255}
	baseColor         = color.RGBA{51, 65, 85, 255}
	jointFill         = color.RGBA{14, 165, 233, 255}
	jointStroke       = color.RGBA{12, 74, 110, 255}
	angleColor        = color.RGBA{251, 191, 36, 255}
	endEffectorFill   = color.RGBA{236, 72, 153, 255}
	endEffectorStroke = color.RGBA{131, 24, 67, 255}
	textColor         = color.RGBA{255, 255, 255, 255}
)

// Options sizes the rendered image.
type Options struct {
	Width  int
	Height int
	// Scale is pixels per unit of arm length. Zero fits ten units into the shorter side.
	Scale float64
	// BaseMargin is the distance in pixels from the bottom edge to the arm's base.
	BaseMargin float64
}

// DefaultOptions returns an 800x600 image with the base 100 pixels above the bottom edge.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, BaseMargin: 100}
}

// A Scene is a snapshot laid out on a canvas.
type Scene struct {
	snap   session.Snapshot
	width  int
	height int
	scale  float64
	origin r2.Point
}

// NewScene lays out snap according to opts.
func NewScene(snap session.Snapshot, opts Options) (*Scene, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.Errorf("image size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = math.Min(float64(opts.Width), float64(opts.Height)) / 10
	}
	return &Scene{
		snap:   snap,
		width:  opts.Width,
		height: opts.Height,
		scale:  scale,
		origin: r2.Point{X: float64(opts.Width) / 2, Y: float64(opts.Height) - opts.BaseMargin},
	}, nil
}

// ToCanvas converts a point in arm coordinates to pixel coordinates. The canvas y axis points down.
func (sc *Scene) ToCanvas(p r2.Point) (float64, float64) {
	return sc.origin.X + p.X*sc.scale, sc.origin.Y - p.Y*sc.scale
}

// Image draws the scene.
func (sc *Scene) Image() image.Image {
	dc := gg.NewContext(sc.width, sc.height)
	dc.SetColor(backgroundColor)
	dc.Clear()

	sc.drawGrid(dc)
	sc.drawReach(dc)
	sc.drawObstacles(dc)
	sc.drawTrajectory(dc)
	sc.drawTarget(dc)
	sc.drawArm(dc)
	sc.drawLegend(dc)
	return dc.Image()
}

// DrawPNG draws the scene and writes it to path.
func (sc *Scene) DrawPNG(path string) error {
	return errors.Wrapf(gg.SavePNG(path, sc.Image()), "writing %s", path)
}

func (sc *Scene) drawGrid(dc *gg.Context) {
	w, h := float64(sc.width), float64(sc.height)
	for x := math.Mod(sc.origin.X, sc.scale); x < w; x += sc.scale {
		dc.DrawLine(x, 0, x, h)
	}
	for y := math.Mod(sc.origin.Y, sc.scale); y < h; y += sc.scale {
		dc.DrawLine(0, y, w, y)
	}
	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.DrawLine(0, sc.origin.Y, w, sc.origin.Y)
	dc.DrawLine(sc.origin.X, h, sc.origin.X, 0)
	dc.SetColor(axisColor)
	dc.SetLineWidth(2)
	dc.Stroke()

	for x := math.Floor(-sc.origin.X / sc.scale); x <= math.Floor((w-sc.origin.X)/sc.scale); x++ {
		if x == 0 {
			continue
		}
		cx, cy := sc.ToCanvas(r2.Point{X: x})
		DrawString(dc, fmt.Sprintf("%.0f", x), cx, cy+16, 0.5, 0.5, labelColor, 12)
	}
	for y := math.Floor(-(h - sc.origin.Y) / sc.scale); y <= math.Floor(sc.origin.Y/sc.scale); y++ {
		if y == 0 {
			continue
		}
		cx, cy := sc.ToCanvas(r2.Point{Y: y})
		DrawString(dc, fmt.Sprintf("%.0f", y), cx+10, cy, 0, 0.5, labelColor, 12)
	}
}

func (sc *Scene) drawReach(dc *gg.Context) {
	if sc.snap.Config == nil {
		return
	}
	dc.DrawCircle(sc.origin.X, sc.origin.Y, sc.snap.Config.MaxReach()*sc.scale)
	dc.SetColor(reachColor)
	dc.SetLineWidth(1)
	dc.Stroke()
}

func (sc *Scene) drawObstacles(dc *gg.Context) {
	for _, o := range sc.snap.Obstacles {
		x, y := sc.ToCanvas(o.Position)
		DrawCircle(dc, x, y, o.Radius*sc.scale, obstacleFill, obstacleStroke, 2)
	}
}

func (sc *Scene) drawTrajectory(dc *gg.Context) {
	if len(sc.snap.Trajectory) == 0 {
		return
	}
	for i, w := range sc.snap.Trajectory {
		x, y := sc.ToCanvas(w.Position)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.SetColor(trajectoryColor)
	dc.SetLineWidth(2)
	dc.Stroke()

	// every other waypoint, to avoid clutter
	for i := 0; i < len(sc.snap.Trajectory); i += 2 {
		x, y := sc.ToCanvas(sc.snap.Trajectory[i].Position)
		c := waypointShade(i, len(sc.snap.Trajectory))
		if i == sc.snap.TrajectoryIndex {
			c = currentStepColor
		}
		DrawCircle(dc, x, y, 3, c, nil, 0)
	}
	if idx := sc.snap.TrajectoryIndex; idx > 0 && idx < len(sc.snap.Trajectory) {
		x, y := sc.ToCanvas(sc.snap.Trajectory[idx].Position)
		DrawCircle(dc, x, y, 6, currentStepColor, nil, 0)
	}
}

// waypointShade fades waypoint i of n from the first waypoint color to the last.
func waypointShade(i, n int) color.Color {
	first, _ := colorful.MakeColor(waypointColor)
	last, _ := colorful.MakeColor(lastWaypointColor)
	if n <= 1 {
		return first
	}
	return first.BlendLab(last, float64(i)/float64(n-1)).Clamped()
}

func (sc *Scene) drawTarget(dc *gg.Context) {
	if sc.snap.Target == nil {
		return
	}
	x, y := sc.ToCanvas(*sc.snap.Target)
	fill := unreachableColor
	if sc.snap.Reachable {
		fill = reachableColor
	}
	DrawCircle(dc, x, y, 10, fill, nil, 0)

	dc.DrawLine(x-15, y, x+15, y)
	dc.DrawLine(x, y-15, x, y+15)
	dc.SetColor(textColor)
	dc.SetLineWidth(2)
	dc.Stroke()

	DrawString(dc, fmt.Sprintf("(%.2f, %.2f)", sc.snap.Target.X, sc.snap.Target.Y), x, y-22, 0.5, 0, textColor, 12)

	status := "Target is unreachable"
	if sc.snap.Reachable {
		status = "Target is reachable"
	}
	DrawString(dc, status, float64(sc.width)/2, 30, 0.5, 0.5, fill, 18)
}

func (sc *Scene) drawArm(dc *gg.Context) {
	positions := sc.snap.Positions
	if len(positions) == 0 {
		return
	}

	dc.MoveTo(sc.origin.X, sc.origin.Y)
	for _, p := range positions {
		dc.LineTo(sc.ToCanvas(p))
	}
	dc.SetColor(linkColor)
	dc.SetLineWidth(12)
	dc.SetLineCapRound()
	dc.Stroke()

	dc.DrawRectangle(sc.origin.X-30, sc.origin.Y-10, 60, 10)
	dc.SetColor(baseColor)
	dc.Fill()

	// each joint pivots at the end of the previous segment
	px, py := sc.origin.X, sc.origin.Y
	for i, p := range positions {
		DrawCircle(dc, px, py, 15, jointFill, jointStroke, 2)
		if i < len(sc.snap.Angles) {
			drawAngleArc(dc, px, py, 25, sc.snap.Angles[i])
		}
		px, py = sc.ToCanvas(p)
	}

	DrawCircle(dc, px, py, 12, endEffectorFill, endEffectorStroke, 2)
	end := positions[len(positions)-1]
	DrawString(dc, fmt.Sprintf("End: (%.2f, %.2f)", end.X, end.Y), px+20, py, 0, 0.5, textColor, 14)
}

// drawAngleArc sweeps clockwise from straight up on the canvas, matching the joint angle convention.
func drawAngleArc(dc *gg.Context, x, y, radius, angle float64) {
	start := -math.Pi / 2
	end := start + angle
	if angle < 0 {
		start, end = end, start
	}
	dc.DrawArc(x, y, radius, start, end)
	dc.SetColor(angleColor)
	dc.SetLineWidth(3)
	dc.Stroke()

	mid := -math.Pi/2 + angle/2
	DrawString(dc, fmt.Sprintf("%.0f°", utils.RadToDeg(angle)),
		x+(radius+15)*math.Cos(mid), y+(radius+15)*math.Sin(mid), 0.5, 0.5, textColor, 12)
}

func (sc *Scene) drawLegend(dc *gg.Context) {
	if sc.snap.Config == nil {
		return
	}
	y := 70.
	DrawString(dc, "Arm Segments:", 20, y, 0, 0, textColor, 14)
	for i, length := range sc.snap.Config.SegmentLengths {
		y += 20
		DrawString(dc, fmt.Sprintf("Segment %d: %.2f units", i+1, length), 30, y, 0, 0, textColor, 14)
	}
	if sc.snap.Pending {
		DrawString(dc, "Calculating optimal position...", float64(sc.width)/2, 60, 0.5, 0.5, textColor, 18)
	}
}
