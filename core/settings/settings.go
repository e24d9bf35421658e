/*
Package settings holds the user-facing parameters of a type scale.

A Settings value is a plain record of numbers, booleans and strings. The
numeric core (packages scale and spacing) only ever reads a snapshot of it;
ownership of the current value lies with the application, usually through a
Store.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package settings

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'typecontrol.settings'.
func tracer() tracing.Trace {
	return tracing.Select("typecontrol.settings")
}

// Settings is the complete parameter record of a type scale.
type Settings struct {
	BaseSize             float64 `json:"baseSize" toml:"baseSize" yaml:"baseSize"`
	Ratio                float64 `json:"ratio" toml:"ratio" yaml:"ratio"`
	LetterSpacing        float64 `json:"letterSpacing" toml:"letterSpacing" yaml:"letterSpacing"`
	LetterSpacingPercent bool    `json:"letterSpacingPercent" toml:"letterSpacingPercent" yaml:"letterSpacingPercent"`
	BezierStrength       float64 `json:"bezierStrength" toml:"bezierStrength" yaml:"bezierStrength"`
	BezierPower          float64 `json:"bezierPower" toml:"bezierPower" yaml:"bezierPower"`
	CustomSizes          string  `json:"customSizes" toml:"customSizes" yaml:"customSizes"`
	UseCustom            bool    `json:"useCustom" toml:"useCustom" yaml:"useCustom"`
	SelectedSize         float64 `json:"selectedSize" toml:"selectedSize" yaml:"selectedSize"`
	MaxLetterSize        float64 `json:"maxLetterSize" toml:"maxLetterSize" yaml:"maxLetterSize"`
	SampleText           string  `json:"sampleText" toml:"sampleText" yaml:"sampleText"`
	SelectedFont         string  `json:"selectedFont" toml:"selectedFont" yaml:"selectedFont"`
	Weight               int     `json:"weight" toml:"weight" yaml:"weight"`
}

// Defaults returns the settings a fresh session starts with.
func Defaults() Settings {
	return Settings{
		BaseSize:             12,
		Ratio:                1.25,
		LetterSpacing:        0,
		LetterSpacingPercent: false,
		BezierStrength:       15,
		BezierPower:          2,
		CustomSizes:          "12,14,16,18,21,24,30,36,48,60,72,128",
		UseCustom:            false,
		SelectedSize:         12,
		MaxLetterSize:        300,
		SampleText:           "typeControl – letterspacing with ease",
		SelectedFont:         "Roboto",
		Weight:               700,
	}
}

// SizeParams is the subset of settings the size list depends on.
// It is comparable and may serve as a memoization key.
type SizeParams struct {
	UseCustom     bool
	CustomSizes   string
	BaseSize      float64
	Ratio         float64
	MaxLetterSize float64
}

// CurveParams is the subset of settings the spacing curve depends on.
type CurveParams struct {
	Strength float64
	Power    float64
}

// SizeParams extracts the parameters for size list generation.
func (s Settings) SizeParams() SizeParams {
	return SizeParams{
		UseCustom:     s.UseCustom,
		CustomSizes:   s.CustomSizes,
		BaseSize:      s.BaseSize,
		Ratio:         s.Ratio,
		MaxLetterSize: s.MaxLetterSize,
	}
}

// CurveParams extracts the parameters of the letter-spacing curve.
func (s Settings) CurveParams() CurveParams {
	return CurveParams{Strength: s.BezierStrength, Power: s.BezierPower}
}

// Validate reports settings which will produce degenerate type scales.
// The numeric core accepts all of them; callers decide whether to warn or
// to refuse. An empty result means the settings are sane.
func (s Settings) Validate() []error {
	var problems []error
	check := func(bad bool, format string, args ...interface{}) {
		if bad {
			problems = append(problems, fmt.Errorf(format, args...))
		}
	}
	check(!s.UseCustom && !(s.BaseSize > 0), "base size must be positive, is %g", s.BaseSize)
	check(!s.UseCustom && !(s.Ratio > 0), "ratio must be positive, is %g", s.Ratio)
	check(!(s.BezierPower > 0), "bezier power must be positive, is %g", s.BezierPower)
	check(!(s.MaxLetterSize > 0), "maximum letter size must be positive, is %g", s.MaxLetterSize)
	check(s.Weight != 0 && (s.Weight < 100 || s.Weight > 900), "font weight must be in 100…900, is %d", s.Weight)
	for _, x := range []float64{s.BaseSize, s.Ratio, s.LetterSpacing, s.BezierStrength,
		s.BezierPower, s.SelectedSize, s.MaxLetterSize} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			problems = append(problems, fmt.Errorf("settings contain a non-finite number"))
			break
		}
	}
	if len(problems) > 0 {
		tracer().Debugf("settings have %d problem(s)", len(problems))
	}
	return problems
}
