/*
Package resources resolves fonts for an application.

A font is searched for, in order, in the font registry, among the fonts
installed on the system, in the font cache directory and in the Google
Fonts directory. A font name which is an http(s) URL is downloaded into the
cache directory instead. If nothing is found, the fallback font is used and
an EMISSING error reports the miss.

As resource loading may be a time-consuming task, resolving works in an
async/await fashion: Resolve(…) returns a promise, which the client will
call later to receive the loaded typecase. The call to the promise-function
will then block until loading has completed or the context is done.

Environment variables:

   TYPECONTROL_FONT_CACHE   overrides the font cache directory
   GOOGLE_API_KEY           enables the Google Fonts directory

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'typecontrol.resources'.
func tracer() tracing.Trace {
	return tracing.Select("typecontrol.resources")
}
