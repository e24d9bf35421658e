/*
Package spacing computes letter-spacing along a type scale.

Letter-spacing of a candidate size is the sum of a base spacing and a curve
term. The curve term depends on the signed distance between the candidate
size and a selected reference size:

	curve(diff) = sign(diff) · (−strength) · 0.25 · |diff|^power / 200^power

For positive strength, sizes larger than the reference size get tighter
spacing, smaller sizes get looser spacing. The distance 200 is a fixed
calibration constant for font sizes measured in pixels. The curve is called
"bezier" in the user interface, even though it is a power function.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package spacing

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/typecontrol/core/settings"
)

// tracer traces with key 'typecontrol.spacing'.
func tracer() tracing.Trace {
	return tracing.Select("typecontrol.spacing")
}

const (
	// NormalizationDistance is the size distance at which |diff|^power/d^power is 1.
	NormalizationDistance = 200.0
	// AmplitudeFactor scales the strength percentage down to a spacing offset.
	AmplitudeFactor = 0.25
)

// Curve maps a signed size difference (candidate − selected) to a
// letter-spacing offset in pixels.
type Curve func(diff float64) float64

// NewCurve creates the spacing curve for a strength (a percentage, nominally
// 0…100, not clamped) and a power (the steepness of the falloff).
// A power ≤ 0 is not rejected and yields a degenerate curve.
func NewCurve(strength, power float64) Curve {
	norm := math.Pow(NormalizationDistance, power)
	return func(diff float64) float64 {
		direction := 1.0
		if diff < 0 {
			direction = -1.0
		}
		return direction * -strength * AmplitudeFactor * math.Pow(math.Abs(diff), power) / norm
	}
}

// CurveFor creates the spacing curve for the curve parameters of a settings
// record.
func CurveFor(p settings.CurveParams) Curve {
	return NewCurve(p.Strength, p.Power)
}

// Base returns the base spacing of a size: letterSpacing in pixels, or,
// with percent set, letterSpacing percent of the size.
func Base(size, letterSpacing float64, percent bool) float64 {
	if percent {
		return letterSpacing / 100 * size
	}
	return letterSpacing
}

// Compute returns the final letter-spacing of a candidate size, relative to
// a selected reference size.
func Compute(size, selected, letterSpacing float64, percent bool, curve Curve) float64 {
	return Base(size, letterSpacing, percent) + curve(size-selected)
}

// Percent converts a letter-spacing to a percentage of its font size.
func Percent(spacing, size float64) float64 {
	return spacing / size * 100
}

// Round2 rounds x to two decimals for display, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// --- Evaluator -------------------------------------------------------------

// Evaluator binds a curve to the call-time parameters of a settings
// snapshot. The zero value is not usable; create evaluators with
// FromSettings or NewEvaluator.
type Evaluator struct {
	Curve         Curve
	Selected      float64
	LetterSpacing float64
	Percent       bool
}

// NewEvaluator creates an evaluator from a curve and call-time parameters.
func NewEvaluator(curve Curve, selected, letterSpacing float64, percent bool) Evaluator {
	return Evaluator{
		Curve:         curve,
		Selected:      selected,
		LetterSpacing: letterSpacing,
		Percent:       percent,
	}
}

// FromSettings creates an evaluator for a settings snapshot.
func FromSettings(s settings.Settings) Evaluator {
	tracer().Debugf("spacing curve strength=%g power=%g, selected size %g",
		s.BezierStrength, s.BezierPower, s.SelectedSize)
	return NewEvaluator(CurveFor(s.CurveParams()), s.SelectedSize, s.LetterSpacing,
		s.LetterSpacingPercent)
}

// At returns the final letter-spacing of a size.
func (e Evaluator) At(size float64) float64 {
	return Compute(size, e.Selected, e.LetterSpacing, e.Percent, e.Curve)
}

// WithSelected returns a copy of e measuring distances from another size.
func (e Evaluator) WithSelected(selected float64) Evaluator {
	e.Selected = selected
	return e
}
