// Package dimen implements dimensions and units for type scales.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Online dimension conversion for print:
// http://www.unitconversion.org/unit_converter/typography-ex.html

// Px is a dimension type.
// Values are in CSS pixels (1/96 inch), the unit the type scale works in.
type Px float64

// Some pre-defined dimensions
const (
	Zero Px = 0
	PX   Px = 1
	PT   Px = 96.0 / 72.0 // printers point as used by CSS, 1/72 inch
	PC   Px = 12 * PT     // pica
	IN   Px = 96
	MM   Px = 96.0 / 25.4
	CM   Px = 10 * MM
)

// RootFontSize is the size of 1rem (and 1em) when converting relative units.
// Browsers default to 16px.
var RootFontSize Px = 16

// Stringer implementation.
func (d Px) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64) + "px"
}

// Points returns a dimension in printer's points.
func (d Px) Points() float64 {
	return float64(d / PT)
}

// Rem returns a dimension relative to RootFontSize.
func (d Px) Rem() float64 {
	return float64(d / RootFontSize)
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+))\s*(%|[a-zA-Z]{2,3})?$`)

// ErrFormat is returned for strings which are not valid dimensions.
var ErrFormat = errors.New("format error parsing dimension")

// ParseDimen parses a string to return a dimension. Syntax is CSS Unit,
// a number without unit is taken as pixels.
// If a percentage value is given (`80%`), the second return value will be true
// and the value is returned unscaled.
func ParseDimen(s string) (Px, bool, error) {
	d := dimenPattern.FindStringSubmatch(strings.TrimSpace(s))
	if len(d) < 2 {
		return 0, false, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	scale := PX
	ispcnt := false
	switch strings.ToLower(d[2]) {
	case "px", "":
		scale = PX
	case "pt":
		scale = PT
	case "pc":
		scale = PC
	case "mm":
		scale = MM
	case "cm":
		scale = CM
	case "in":
		scale = IN
	case "rem", "em":
		scale = RootFontSize
	case "%":
		scale, ispcnt = 1, true
	default:
		return 0, false, fmt.Errorf("%w: unknown unit in %q", ErrFormat, s)
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	return Px(n) * scale, ispcnt, nil
}

// HasUnit is true if s is a dimension written with an explicit unit.
// Units are not checked, see ParseDimen.
func HasUnit(s string) bool {
	d := dimenPattern.FindStringSubmatch(strings.TrimSpace(s))
	return len(d) == 3 && d[2] != ""
}
