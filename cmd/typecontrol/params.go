package main

import (
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/typecontrol/core"
	"github.com/npillmayer/typecontrol/core/dimen"
	"github.com/npillmayer/typecontrol/core/scale"
	"github.com/npillmayer/typecontrol/core/settings"
)

// parameters maps parameter names, as used by flags and by the shell's
// 'set' command, to a setter.
var parameters = map[string]func(*settings.Settings, string) error{
	"base": func(s *settings.Settings, v string) (err error) {
		s.BaseSize, err = parseSize(v)
		return
	},
	"ratio": func(s *settings.Settings, v string) (err error) {
		s.Ratio, err = parseNumber(v)
		return
	},
	"custom": func(s *settings.Settings, v string) error {
		s.CustomSizes = v
		s.UseCustom = strings.TrimSpace(v) != ""
		return nil
	},
	"usecustom": func(s *settings.Settings, v string) (err error) {
		s.UseCustom, err = parseBool(v)
		return
	},
	"max": func(s *settings.Settings, v string) (err error) {
		s.MaxLetterSize, err = parseSize(v)
		return
	},
	"spacing": func(s *settings.Settings, v string) error {
		d, isPercent, err := dimen.ParseDimen(v)
		if err != nil {
			return core.WrapError(err, core.EINVALID, "invalid letter-spacing %q", v)
		}
		s.LetterSpacing = float64(d)
		if isPercent || dimen.HasUnit(v) {
			s.LetterSpacingPercent = isPercent
		}
		return nil
	},
	"percent": func(s *settings.Settings, v string) (err error) {
		s.LetterSpacingPercent, err = parseBool(v)
		return
	},
	"strength": func(s *settings.Settings, v string) (err error) {
		s.BezierStrength, err = parseNumber(v)
		return
	},
	"power": func(s *settings.Settings, v string) (err error) {
		s.BezierPower, err = parseNumber(v)
		return
	},
	"selected": func(s *settings.Settings, v string) (err error) {
		s.SelectedSize, err = parseSize(v)
		return
	},
	"font": func(s *settings.Settings, v string) error {
		s.SelectedFont = v
		return nil
	},
	"text": func(s *settings.Settings, v string) error {
		s.SampleText = v
		return nil
	},
	"weight": func(s *settings.Settings, v string) error {
		w, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return core.WrapError(err, core.EINVALID, "invalid font weight %q", v)
		}
		s.Weight = w
		return nil
	},
}

func isParameter(name string) bool {
	_, ok := parameters[name]
	return ok
}

func parameterNames() []string {
	names := make([]string, 0, len(parameters))
	for name := range parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// setParameter parses a value for a named parameter into s.
func setParameter(s *settings.Settings, name, value string) error {
	set, ok := parameters[name]
	if !ok {
		return core.Error(core.EINVALID, "unknown parameter %q", name)
	}
	return set(s, value)
}

func parseSize(v string) (float64, error) {
	d, isPercent, err := dimen.ParseDimen(v)
	if err == nil && isPercent {
		err = dimen.ErrFormat
	}
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "invalid size %q", v)
	}
	return float64(d), nil
}

func parseNumber(v string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "invalid number %q", v)
	}
	return x, nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, core.WrapError(err, core.EINVALID, "invalid switch %q", v)
	}
	return b, nil
}

// snapSelected moves the selected size onto the current scale and warns
// about clipped sizes and custom lists which are not ascending.
func (a *app) snapSelected(s settings.Settings) settings.Settings {
	result := scale.Generate(s.SizeParams())
	sizes := result.Sizes
	if s.UseCustom && !scale.Ascending(sizes) {
		a.warnf("custom sizes are not in ascending order: %s", scale.Join(sizes))
	}
	if len(sizes) == 0 {
		a.warnf("the scale is empty: no size is below %gpx", s.MaxLetterSize)
		return s
	}
	if result.Filtered {
		a.warnf("sizes at or above %gpx were dropped", s.MaxLetterSize)
	}
	if snapped, ok := scale.Snap(s.SelectedSize, sizes); ok && snapped != s.SelectedSize {
		tracer().Infof("selected size %g is not part of the scale, using %g", s.SelectedSize, snapped)
		s.SelectedSize = snapped
	}
	return s
}
