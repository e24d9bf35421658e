package graph

import (
	"math"

	"github.com/npillmayer/typecontrol/core/scale"
	"github.com/npillmayer/typecontrol/core/spacing"
)

// Point is a point of a sampled curve, in pixel coordinates with the origin
// at the top left of the drawing area.
type Point struct {
	X, Y float64
}

// Plot is a curve sampled for display.
type Plot struct {
	Points   []Point // one point per pixel column, left to right
	Scale    float64 // factor applied to raw curve values
	Min, Max float64 // size domain, mapped to [0, Width]
	Selected float64 // reference size
	Sizes    []float64
	Width    int
	Height   int
}

// Centerline is the y coordinate of a spacing offset of 0.
func (p Plot) Centerline() float64 {
	return float64(p.Height) / 2
}

// SizeToX maps a size to its horizontal pixel position.
// For a degenerate domain (all sizes equal) every size maps to 0.
func (p Plot) SizeToX(size float64) float64 {
	if p.Max == p.Min {
		return 0
	}
	return (size - p.Min) / (p.Max - p.Min) * float64(p.Width)
}

// Empty is true if there was nothing to sample.
func (p Plot) Empty() bool {
	return len(p.Points) == 0
}

// Sample evaluates a spacing curve for display in a drawing area of
// width × height pixels.
//
// The curve is scaled such that the larger absolute value at either end of
// the size domain maps to height/2. If the curve is flat over the whole
// domain, the scale is 1. The strength percentage is applied once more as a
// display factor on top of the strength already contained in the curve, so
// the amplitude on screen follows strength².
//
// For an empty size list Sample returns an empty plot.
func Sample(sizes []float64, selected float64, curve spacing.Curve, strength float64,
	width, height int) Plot {
	//
	plot := Plot{Selected: selected, Sizes: sizes, Width: width, Height: height, Scale: 1}
	lo, hi, ok := scale.MinMax(sizes)
	if !ok || width < 0 {
		tracer().Debugf("nothing to sample")
		return plot
	}
	plot.Min, plot.Max = lo, hi
	plot.Scale = Autoscale(lo, hi, selected, curve, height)
	center := plot.Centerline()
	plot.Points = make([]Point, 0, width+1)
	for px := 0; px <= width; px++ {
		size := lo
		if width > 0 {
			size = lo + (hi-lo)*float64(px)/float64(width)
		}
		scaled := curve(size-selected) * plot.Scale
		y := center - scaled*strength/100
		plot.Points = append(plot.Points, Point{X: float64(px), Y: y})
	}
	tracer().Debugf("sampled %d columns, scale = %g", len(plot.Points), plot.Scale)
	return plot
}

// Autoscale returns the factor which maps the peak of a curve over the size
// domain [lo, hi] to height/2. The peak is taken at the domain's ends.
func Autoscale(lo, hi, selected float64, curve spacing.Curve, height int) float64 {
	spacingHigh := math.Abs(curve(hi - selected))
	spacingLow := math.Abs(curve(lo - selected))
	rawPeak := math.Max(spacingHigh, spacingLow)
	if rawPeak > 0 && !math.IsInf(rawPeak, 0) {
		return float64(height) / 2 / rawPeak
	}
	return 1
}
