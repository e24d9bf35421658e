package font

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// DPI is the resolution typecases are created with. At 72 DPI a point
// equals a pixel.
const DPI = 72

// MaxCaseSize is the largest size a typecase may be prepared for.
const MaxCaseSize = 2000.0

// ErrCaseSize is returned for sizes a typecase cannot be prepared for.
var ErrCaseSize = errors.New("font size out of range")

// ScalableFont is a font variant loaded from a font file.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// Descriptor describes a font family available from a font source, together
// with its variants ("regular", "700italic", …).
type Descriptor struct {
	Family   string
	Path     string
	Variants []string
}

// TypeCase is a scalable font at a given size.
//
// The face of a typecase is not safe for concurrent use.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64
}

// LoadOpenTypeFont loads an OpenType or TrueType font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("font file %s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses the binary data of a font.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// PrepareCase creates a typecase for a font size in pixels.
func (sf *ScalableFont) PrepareCase(size float64) (*TypeCase, error) {
	if math.IsNaN(size) || size <= 0 || size > MaxCaseSize {
		return nil, fmt.Errorf("%w: %g", ErrCaseSize, size)
	}
	face, err := opentype.NewFace(sf.SFNT, &opentype.FaceOptions{
		Size:    size,
		DPI:     DPI,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	return &TypeCase{scalableFontParent: sf, face: face, size: size}, nil
}

// ScalableFontParent returns the font a typecase has been prepared from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// Size returns the size of a typecase in pixels.
func (tc *TypeCase) Size() float64 {
	return tc.size
}

// Face returns the face for drawing with a typecase.
func (tc *TypeCase) Face() xfont.Face {
	return tc.face
}

// Ascent returns the ascent of a typecase, in pixels.
func (tc *TypeCase) Ascent() float64 {
	return fromFixed(tc.face.Metrics().Ascent)
}

// LineHeight returns the recommended line height of a typecase, in pixels.
func (tc *TypeCase) LineHeight() float64 {
	return fromFixed(tc.face.Metrics().Height)
}

// Advance returns the unspaced advance width of a string, in pixels.
func (tc *TypeCase) Advance(s string) float64 {
	return fromFixed(xfont.MeasureString(tc.face, s))
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// --- Fallback font ---------------------------------------------------------

// FallbackFontName is the name of the fallback font.
const FallbackFontName = "Go Sans"

// FallbackFont returns a font to be used if everything else fails. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont := &ScalableFont{
		Fontname: FallbackFontName,
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	var err error
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}
