/*
Package font is for typeface and font handling.

We stick to the following definitions:

* A "scalable font" is a variant of a typeface with a certain weight and
style, loaded from an OpenType or TrueType file. An example is
"Roboto bold".

* A "typecase" is a scaled font, i.e. a font at a certain size, ready for
measuring and drawing text. The name is reminiscent of the wooden boxes of
typesetters in the era of metal type.

Please note that Go (Golang) does use the terms "font" and "face"
differently, more or less in an opposite manner.

Font sizes are given in pixels. Typecases are created at 72 DPI, where one
point equals one pixel, so a typecase of size 16 renders glyphs 16px high
(em square).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'typecontrol.font'.
func tracer() tracing.Trace {
	return tracing.Select("typecontrol.font")
}
