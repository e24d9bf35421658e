package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/npillmayer/typecontrol/core/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// LabelSize is the font size of line captions, in px.
const LabelSize = 11.0

// TypeCaseFunc returns a typecase for a font size.
type TypeCaseFunc func(size float64) (*font.TypeCase, error)

// Options controls rasterizing of a preview.
type Options struct {
	Text       string       // sample text
	TypeCase   TypeCaseFunc // nil: fallback font
	Width      int          // image width; 0: fit the widest line
	MaxWidth   int          // upper bound for a fitted width, default 4000
	Margin     int          // space around the lines, default 16
	Gutter     int          // width of the caption column, default 130
	Foreground color.Color
	Background color.Color
	Highlight  color.Color // marker of the selected line
}

func (opts *Options) defaults() {
	if opts.TypeCase == nil {
		opts.TypeCase = FallbackTypeCase
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = 4000
	}
	if opts.Margin <= 0 {
		opts.Margin = 16
	}
	if opts.Gutter <= 0 {
		opts.Gutter = 130
	}
	if opts.Foreground == nil {
		opts.Foreground = color.Black
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if opts.Highlight == nil {
		opts.Highlight = color.RGBA{0x00, 0xdd, 0x00, 0xff}
	}
}

// FallbackTypeCase prepares the fallback font at a size.
func FallbackTypeCase(size float64) (*font.TypeCase, error) {
	return font.FallbackFont().PrepareCase(size)
}

// ErrNoLines is returned when there is nothing to render.
var ErrNoLines = errors.New("no lines to render")

// LayoutWidth returns the width of a text set with a typecase and a
// letter-spacing after every grapheme cluster, in pixels.
func LayoutWidth(tc *font.TypeCase, text string, letterSpacing float64) float64 {
	w := 0.0
	for _, cluster := range Graphemes(text) {
		w += tc.Advance(cluster) + letterSpacing
	}
	return w
}

type typesetLine struct {
	Line
	tc     *font.TypeCase
	top    int // y of the top of the line box
	ascent int
	height int
}

// Render rasterizes preview lines into an image.
func Render(lines []Line, opts Options) (*image.RGBA, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	opts.defaults()
	label, err := FallbackTypeCase(LabelSize)
	if err != nil {
		return nil, err
	}
	set := make([]typesetLine, len(lines))
	y, widest := opts.Margin, 0.0
	for i, l := range lines {
		tc, err := opts.TypeCase(l.Size)
		if tc == nil {
			if err == nil {
				err = fmt.Errorf("no typecase for size %g", l.Size)
			}
			return nil, err
		}
		if err != nil {
			tracer().Infof("preview at %gpx: %v", l.Size, err)
		}
		set[i] = typesetLine{
			Line:   l,
			tc:     tc,
			top:    y,
			ascent: int(math.Ceil(tc.Ascent())),
			height: int(math.Ceil(tc.LineHeight())),
		}
		y += set[i].height
		if w := LayoutWidth(tc, opts.Text, l.Spacing); w > widest {
			widest = w
		}
	}
	width := opts.Width
	if width <= 0 {
		width = opts.Gutter + int(math.Ceil(widest)) + 2*opts.Margin
		if width > opts.MaxWidth {
			width = opts.MaxWidth
		}
	}
	height := y + opts.Margin
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	fg := image.NewUniform(opts.Foreground)
	for _, l := range set {
		baseline := l.top + l.ascent
		if l.Selected {
			marker := image.Rect(opts.Margin/4, l.top, opts.Margin/4+4, l.top+l.height)
			draw.Draw(img, marker, image.NewUniform(opts.Highlight), image.Point{}, draw.Src)
		}
		caption := xfont.Drawer{Dst: img, Src: fg, Face: label.Face(),
			Dot: fixed.P(opts.Margin, baseline)}
		caption.DrawString(l.Label())
		d := xfont.Drawer{Dst: img, Src: fg, Face: l.tc.Face(),
			Dot: fixed.P(opts.Margin+opts.Gutter, baseline)}
		spacing := toFixed(l.Spacing)
		for _, cluster := range Graphemes(opts.Text) {
			d.DrawString(cluster)
			d.Dot.X += spacing
		}
	}
	tracer().Debugf("rendered %d preview lines into %d×%d image", len(lines), width, height)
	return img, nil
}

// RenderPNG rasterizes preview lines and writes them as a PNG image.
func RenderPNG(w io.Writer, lines []Line, opts Options) error {
	img, err := Render(lines, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func toFixed(x float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(x * 64))
}
