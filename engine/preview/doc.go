/*
Package preview renders a type scale as a list of sample lines, one line
per font size, each set with its own letter-spacing.

Lines are rendered either as plain text for a terminal or rasterized into a
PNG image. Letter-spacing is applied after every grapheme cluster, as
browsers do for CSS letter-spacing, so combining marks stay with their base
character.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package preview

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'typecontrol.preview'.
func tracer() tracing.Trace {
	return tracing.Select("typecontrol.preview")
}
