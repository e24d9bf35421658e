package graph

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// Default dimensions of a chart, in pixels.
const (
	DefaultWidth  = 1900
	DefaultHeight = 200
)

// SVGOptions controls the appearance of a chart.
type SVGOptions struct {
	SpacingUpLabel   string // label at the top of the chart
	SpacingDownLabel string // label at the bottom of the chart
	FontSizeLabel    string // label of the x-axis
	CurveColor       string
	SelectedColor    string
}

// DefaultSVGOptions returns the chart style of the interactive tool.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		SpacingUpLabel:   "more spacing",
		SpacingDownLabel: "less spacing",
		FontSizeLabel:    "font size",
		CurveColor:       "#9333ea",
		SelectedColor:    "#00dd00",
	}
}

const labelStyle = "font-size:12px;fill:#333;font-family:sans-serif"

// WriteSVG renders a sampled plot as an SVG document: a centerline, a guide
// line for each size of the scale, a marker for the selected size, tick
// labels along the x-axis and the curve itself.
func WriteSVG(w io.Writer, plot Plot, opts SVGOptions) error {
	if opts.CurveColor == "" || opts.SelectedColor == "" {
		defaults := DefaultSVGOptions()
		if opts.CurveColor == "" {
			opts.CurveColor = defaults.CurveColor
		}
		if opts.SelectedColor == "" {
			opts.SelectedColor = defaults.SelectedColor
		}
	}
	ew := &errWriter{w: w}
	width, height := plot.Width, plot.Height
	mid := height / 2
	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white;stroke:#ccc")
	canvas.Line(0, mid, width, mid, "stroke:#ccc;stroke-width:1")
	canvas.Line(0, 0, 0, height, "stroke:#ccc;stroke-width:1")
	if plot.Empty() {
		canvas.Text(width/2, mid-4, "no sizes", labelStyle+";text-anchor:middle")
		canvas.End()
		return ew.err
	}
	for _, size := range plot.Sizes {
		x := px(plot.SizeToX(size))
		canvas.Line(x, 0, x, height, "stroke:#ddd;stroke-width:1")
	}
	sx := px(plot.SizeToX(plot.Selected))
	canvas.Line(sx, 0, sx, height, fmt.Sprintf("stroke:%s;stroke-width:2", opts.SelectedColor))
	for _, tick := range NiceTicks(plot.Min, plot.Max, TickCount(width, MinLabelGap)) {
		x := px(plot.SizeToX(tick))
		anchor := "start"
		if x > width-40 {
			anchor = "end"
		}
		canvas.Text(x+4, height-5, formatTick(tick)+"px", labelStyle+";text-anchor:"+anchor)
	}
	canvas.Text(2, mid-4, "0", labelStyle)
	canvas.Text(10, 20, opts.SpacingUpLabel, labelStyle)
	canvas.Text(10, height-20, opts.SpacingDownLabel, labelStyle)
	canvas.Text(width-10, 24, opts.FontSizeLabel, labelStyle+";text-anchor:end")
	canvas.Path(PathData(plot), fmt.Sprintf("stroke:%s;stroke-width:2;fill:none", opts.CurveColor))
	canvas.End()
	tracer().Debugf("wrote SVG chart %d×%d", width, height)
	return ew.err
}

// PathData returns the SVG path data ("M … L …") of a plot's curve,
// starting at the left end of the centerline.
func PathData(plot Plot) string {
	var b strings.Builder
	b.WriteString("M 0 ")
	b.WriteString(coord(plot.Centerline()))
	for _, p := range plot.Points {
		b.WriteString(" L ")
		b.WriteString(coord(p.X))
		b.WriteByte(' ')
		b.WriteString(coord(p.Y))
	}
	return b.String()
}

func coord(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func px(v float64) int {
	return int(math.Round(v))
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return len(p), nil
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
