package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/npillmayer/typecontrol/core"
	"github.com/npillmayer/typecontrol/core/font"
	"github.com/npillmayer/typecontrol/core/locate/resources"
	"github.com/npillmayer/typecontrol/core/scale"
	"github.com/npillmayer/typecontrol/core/settings"
	"github.com/npillmayer/typecontrol/core/spacing"
	"github.com/npillmayer/typecontrol/engine/graph"
	"github.com/npillmayer/typecontrol/engine/preview"
	"github.com/npillmayer/typecontrol/engine/table"
	xfont "golang.org/x/image/font"
)

// Default dimensions of the letter-spacing graph.
const (
	GraphWidth  = 1900
	GraphHeight = 200
)

type command struct {
	summary string
	run     func(context.Context, *app) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"list":     {"print the sizes of the scale", listCmd},
		"table":    {"print sizes with letter-spacing (--format text|csv|html|css)", tableCmd},
		"css":      {"print a stylesheet with a rule per size (--prefix)", cssCmd},
		"graph":    {"draw the letter-spacing curve as SVG", graphCmd},
		"preview":  {"show the sample text at every size; PNG with --out", previewCmd},
		"fonts":    {"list installed fonts (--search)", fontsCmd},
		"settings": {"print the effective settings (--format toml|yaml|json)", settingsCmd},
		"shell":    {"change settings interactively", shellCmd},
	}
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// withOutput runs write with the command's output writer.
func (a *app) withOutput(write func(io.Writer) error) error {
	w, closer, err := a.output()
	if err != nil {
		return err
	}
	err = write(w)
	if cerr := closer(); err == nil && cerr != nil {
		err = core.WrapError(cerr, core.EINVALID, "cannot write output file %s", a.opts.out)
	}
	return err
}

func listCmd(ctx context.Context, a *app) error {
	result := scale.Generate(a.settings.SizeParams())
	if result.Filtered {
		tracer().Infof("scale clipped at %gpx: %s", a.settings.MaxLetterSize, scale.Join(result.Sizes))
	}
	return a.withOutput(func(w io.Writer) error {
		_, err := fmt.Fprintln(w, scale.Join(result.Sizes))
		return err
	})
}

func buildTable(s settings.Settings) table.Table {
	sizes := scale.GenerateSizes(s.SizeParams())
	return table.Build(sizes, spacing.FromSettings(s))
}

func tableCmd(ctx context.Context, a *app) error {
	format, err := table.ParseFormat(a.opts.format)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "unknown table format %q", a.opts.format)
	}
	tbl := buildTable(a.settings)
	return a.withOutput(func(w io.Writer) error {
		if format == table.FormatCSS {
			return tbl.WriteCSS(w, a.cssOptions())
		}
		return tbl.Write(w, format, a.opts.lang)
	})
}

func (a *app) cssOptions() table.CSSOptions {
	return table.CSSOptions{Prefix: a.opts.prefix, Em: a.settings.LetterSpacingPercent}
}

func cssCmd(ctx context.Context, a *app) error {
	tbl := buildTable(a.settings)
	return a.withOutput(func(w io.Writer) error {
		return tbl.WriteCSS(w, a.cssOptions())
	})
}

func graphCmd(ctx context.Context, a *app) error {
	width, height := a.opts.width, a.opts.height
	if width <= 0 {
		width = GraphWidth
	}
	if height <= 0 {
		height = GraphHeight
	}
	s := a.settings
	sizes := scale.GenerateSizes(s.SizeParams())
	plot := graph.Sample(sizes, s.SelectedSize, spacing.CurveFor(s.CurveParams()),
		s.BezierStrength, width, height)
	return a.withOutput(func(w io.Writer) error {
		return graph.WriteSVG(w, plot, graph.DefaultSVGOptions())
	})
}

// previewCmd prints the preview lines as text, or renders them into a PNG
// image if an output file is given.
func previewCmd(ctx context.Context, a *app) error {
	s := a.settings
	lines := preview.Lines(scale.GenerateSizes(s.SizeParams()), spacing.FromSettings(s))
	if a.opts.out == "" {
		return preview.WriteList(a.stdout, lines, s.SampleText, a.opts.width)
	}
	weight := font.WeightFromCSS(s.Weight)
	typeCase := func(size float64) (*font.TypeCase, error) {
		return a.resolver.Resolve(s.SelectedFont, xfont.StyleNormal, weight, size).TypeCase(ctx)
	}
	if _, err := typeCase(s.SelectedSize); err != nil {
		if core.Code(err) != core.EMISSING {
			return err
		}
		a.warnf("font %q not found, using %s", s.SelectedFont, font.FallbackFontName)
	}
	return a.withOutput(func(w io.Writer) error {
		return preview.RenderPNG(w, lines, preview.Options{
			Text:     s.SampleText,
			TypeCase: typeCase,
			Width:    a.opts.width,
		})
	})
}

// fontsCmd lists installed font files matching --search, and families of
// the Google Fonts directory if an API key is configured.
func fontsCmd(ctx context.Context, a *app) error {
	var paths []string
	if a.resolver.SystemFonts != nil {
		paths = a.resolver.SystemFonts()
	}
	if a.opts.search != "" {
		paths = resources.NewFontIndex(paths).Search(a.opts.search)
	} else {
		sort.Strings(paths)
	}
	var google []resources.GoogleFontInfo
	if a.resolver.GoogleAPIKey != "" {
		pattern := a.opts.search
		if pattern == "" {
			pattern = "."
		}
		var err error
		if google, err = a.resolver.ListGoogleFonts(ctx, pattern); err != nil {
			a.warnf("%s", core.UserMessage(err))
		}
	}
	return a.withOutput(func(w io.Writer) error {
		for _, p := range paths {
			if _, err := fmt.Fprintln(w, p); err != nil {
				return err
			}
		}
		for _, fi := range google {
			if _, err := fmt.Fprintf(w, "google: %s [%s]\n", fi.Family, strings.Join(fi.Variants, " ")); err != nil {
				return err
			}
		}
		return nil
	})
}

func settingsCmd(ctx context.Context, a *app) error {
	format := settings.FormatTOML
	switch strings.ToLower(a.opts.format) {
	case "", "text", "toml":
	case "yaml", "yml":
		format = settings.FormatYAML
	case "json":
		format = settings.FormatJSON
	default:
		return core.Error(core.EINVALID, "unknown settings format %q", a.opts.format)
	}
	data, err := settings.Encode(a.settings, format)
	if err != nil {
		return core.WrapError(err, core.EFORMAT, "cannot encode settings")
	}
	return a.withOutput(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
