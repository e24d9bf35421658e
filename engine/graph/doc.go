/*
Package graph samples the letter-spacing curve of a type scale for charts.

Raw curve values may be arbitrarily small or large compared to the height of
a chart. Sample therefore rescales the curve so that its larger end touches
the border of a drawing area of fixed pixel height, then evaluates it for
every pixel column.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package graph

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'typecontrol.graph'.
func tracer() tracing.Trace {
	return tracing.Select("typecontrol.graph")
}
