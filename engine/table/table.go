/*
Package table tabulates the letter-spacing of a type scale and exports the
table as text, CSV, HTML or CSS.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package table

import (
	"strconv"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/typecontrol/core/spacing"
)

// tracer traces with key 'typecontrol.table'.
func tracer() tracing.Trace {
	return tracing.Select("typecontrol.table")
}

// Header is the column header of exported tables.
var Header = []string{"Index", "Font Size (px)", "Letter Spacing (px)", "Letter Spacing (%)"}

// Row is a table row for a single size of a type scale.
type Row struct {
	Index    int     // 1-based position in the scale
	Size     float64 // font size in px
	Spacing  float64 // letter-spacing in px, full precision
	Percent  float64 // letter-spacing as percentage of Size, full precision
	Selected bool    // Size is the reference size
}

// Table is the tabulated type scale.
type Table struct {
	Rows []Row
}

// Build tabulates a list of sizes with an evaluator for their letter-spacing.
func Build(sizes []float64, eval spacing.Evaluator) Table {
	tbl := Table{Rows: make([]Row, len(sizes))}
	for i, size := range sizes {
		sp := eval.At(size)
		tbl.Rows[i] = Row{
			Index:    i + 1,
			Size:     size,
			Spacing:  sp,
			Percent:  spacing.Percent(sp, size),
			Selected: size == eval.Selected,
		}
	}
	tracer().Debugf("tabulated %d sizes", len(sizes))
	return tbl
}

// SizeText returns the font size as displayed.
func (r Row) SizeText() string {
	return strconv.FormatFloat(r.Size, 'f', -1, 64)
}

// SpacingText returns the letter-spacing in px, with two decimals.
func (r Row) SpacingText() string {
	return strconv.FormatFloat(r.Spacing, 'f', 2, 64)
}

// PercentText returns the letter-spacing percentage, with two decimals
// and a percent sign.
func (r Row) PercentText() string {
	return strconv.FormatFloat(r.Percent, 'f', 2, 64) + "%"
}

// Cells returns the textual cells of a row, in the order of Header.
func (r Row) Cells() []string {
	return []string{strconv.Itoa(r.Index), r.SizeText(), r.SpacingText(), r.PercentText()}
}
