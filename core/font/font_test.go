package font

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typecontrol/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
)

type sw struct {
	s xfont.Style
	w xfont.Weight
}

func TestGuess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.font")
	defer teardown()
	//
	for k, v := range map[string]sw{
		"fonts/Clarendon-bold.ttf":               {xfont.StyleNormal, xfont.WeightBold},
		"Microsoft/Gill Sans MT Bold Italic.ttf": {xfont.StyleItalic, xfont.WeightBold},
		"Cambria Math.ttf":                       {xfont.StyleNormal, xfont.WeightNormal},
		"Roboto-Light.ttf":                       {xfont.StyleNormal, xfont.WeightLight},
	} {
		style, weight := GuessStyleAndWeight(k)
		assert.Equal(t, v.s, style, "style of %s", k)
		assert.Equal(t, v.w, weight, "weight of %s", k)
	}
}

func TestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.font")
	defer teardown()
	//
	assert.True(t, Matches("fonts/Clarendon-bold.ttf", "clarendon", xfont.StyleNormal, xfont.WeightBold))
	assert.True(t, Matches("Microsoft/Gill Sans MT Bold Italic.ttf", "gill sans", xfont.StyleItalic, xfont.WeightBold))
	assert.True(t, Matches("Cambria Math.ttf", "cambria", xfont.StyleNormal, xfont.WeightNormal))
	assert.False(t, Matches("Cambria Math.ttf", "cambria", xfont.StyleNormal, xfont.WeightBold))
}

func TestNormalizeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.font")
	defer teardown()
	//
	assert.Equal(t, "clarendon-italic-bold", NormalizeFontname("Clarendon", xfont.StyleItalic, xfont.WeightBold))
	assert.Equal(t, "open_sans", NormalizeFontname(" Open Sans ", xfont.StyleNormal, xfont.WeightNormal))
	assert.Equal(t, "roboto-light", NormalizeFontname("Roboto.ttf", xfont.StyleNormal, xfont.WeightThin))
}

func TestCSSWeights(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.font")
	defer teardown()
	//
	assert.Equal(t, xfont.WeightNormal, WeightFromCSS(400))
	assert.Equal(t, xfont.WeightBold, WeightFromCSS(700))
	assert.Equal(t, xfont.WeightSemiBold, WeightFromCSS(649))
	assert.Equal(t, xfont.WeightThin, WeightFromCSS(0))
	assert.Equal(t, xfont.WeightBlack, WeightFromCSS(950))
	for w := 100; w <= 900; w += 100 {
		assert.Equal(t, w, CSSWeight(WeightFromCSS(w)))
	}
}

func TestClosestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.font")
	defer teardown()
	//
	descs := []Descriptor{
		{Family: "Anonymous Pro", Variants: []string{"regular", "italic", "700", "700italic"}},
		{Family: "Antic", Variants: []string{"regular"}},
	}
	match, variant, conf := ClosestMatch(descs, "anonymous", xfont.StyleNormal, xfont.WeightBold)
	assert.Equal(t, "Anonymous Pro", match.Family)
	assert.Equal(t, "700", variant)
	assert.Equal(t, HighConfidence, conf)
	_, variant, conf = ClosestMatch(descs, "anonymous", xfont.StyleItalic, xfont.WeightBold)
	assert.Equal(t, "700italic", variant)
	assert.Equal(t, PerfectConfidence, conf)
	_, variant, conf = ClosestMatch(descs, "Antic", xfont.StyleNormal, xfont.WeightNormal)
	assert.Equal(t, "regular", variant)
	assert.Equal(t, PerfectConfidence, conf)
	_, _, conf = ClosestMatch(descs, "Roboto", xfont.StyleNormal, xfont.WeightNormal)
	assert.Equal(t, NoConfidence, conf)
}

func TestFallbackTypeCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.font")
	defer teardown()
	//
	f := FallbackFont()
	require.NotNil(t, f)
	assert.Equal(t, FallbackFontName, f.Fontname)
	tc, err := f.PrepareCase(16)
	require.NoError(t, err)
	assert.Equal(t, 16.0, tc.Size())
	assert.Greater(t, tc.Ascent(), 0.0)
	assert.Greater(t, tc.LineHeight(), tc.Ascent())
	assert.Greater(t, tc.Advance("MM"), tc.Advance("M"))
	_, err = f.PrepareCase(0)
	assert.ErrorIs(t, err, ErrCaseSize)
}

func TestParseFontFromBytes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.font")
	defer teardown()
	//
	f, err := ParseOpenTypeFont(FallbackFont().Binary)
	require.NoError(t, err)
	assert.Contains(t, f.Fontname, "Go")
	_, err = ParseOpenTypeFont([]byte("no font"))
	assert.Error(t, err)
	_, err = LoadOpenTypeFont("does-not-exist.ttf")
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.font")
	defer teardown()
	//
	reg := NewRegistry()
	tc, err := reg.TypeCase("roboto-bold", 12)
	require.NotNil(t, tc, "fallback typecase expected")
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.Equal(t, FallbackFontName, tc.ScalableFontParent().Fontname)
	//
	reg.StoreFont("gosans", FallbackFont())
	assert.True(t, reg.HasFont("gosans"))
	tc1, err := reg.TypeCase("gosans", 24)
	require.NoError(t, err)
	tc2, err := reg.TypeCase("gosans", 24)
	require.NoError(t, err)
	assert.Same(t, tc1, tc2, "typecases are cached")
	assert.Equal(t, []string{"fallback", "gosans"}, reg.Fonts())
	reg.LogFontList()
}
