/*
Package scale derives the list of font sizes of a type scale.

Sizes either follow a geometric progression, starting at a base size and
growing by a fixed ratio, or are taken from a user-supplied list of numbers.
In both cases every size at or above a maximum letter size is clipped.

The functions of this package are pure and may be called concurrently.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scale

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'typecontrol.scale'.
func tracer() tracing.Trace {
	return tracing.Select("typecontrol.scale")
}
