package preview

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typecontrol/core/spacing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.preview")
	defer teardown()
	//
	eval := spacing.NewEvaluator(spacing.NewCurve(15, 2), 16, 0, false)
	lines := Lines([]float64{12, 16, 32}, eval)
	require.Len(t, lines, 3)
	assert.True(t, lines[1].Selected)
	assert.Equal(t, 0.0, lines[1].Spacing)
	assert.InDelta(t, -0.024, lines[2].Spacing, 1e-12)
	assert.Greater(t, lines[0].Spacing, 0.0)
	assert.Equal(t, "32px / -0.02px", lines[2].Label())
	assert.Empty(t, Lines(nil, eval))
}

func TestGraphemes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.preview")
	defer teardown()
	//
	assert.Equal(t, []string{"T", "y", "p", "e"}, Graphemes("Type"))
	assert.Equal(t, []string{"e\u0301", "a"}, Graphemes("e\u0301a"), "combining mark stays with its base")
	assert.Empty(t, Graphemes(""))
}

func TestTruncate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.preview")
	defer teardown()
	//
	assert.Equal(t, "typeControl", Truncate("typeControl", 0))
	assert.Equal(t, "typeControl", Truncate("typeControl", 11))
	assert.Equal(t, "type…", Truncate("typeControl", 5))
	assert.Equal(t, "日本…", Truncate("日本語テキスト", 5), "wide characters take two cells")
}

func TestWriteList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.preview")
	defer teardown()
	//
	eval := spacing.NewEvaluator(spacing.NewCurve(15, 2), 16, 0, false)
	var buf bytes.Buffer
	require.NoError(t, WriteList(&buf, Lines([]float64{12, 16}, eval), "Hamburgefonstiv", 0))
	out := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, out, 2)
	assert.True(t, strings.HasPrefix(out[1], "* 16px / 0.00px"))
	assert.True(t, strings.HasSuffix(out[0], "Hamburgefonstiv"))
}

func TestLayoutWidthGrowsWithSpacing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.preview")
	defer teardown()
	//
	tc, err := FallbackTypeCase(24)
	require.NoError(t, err)
	tight := LayoutWidth(tc, "Type", 0)
	loose := LayoutWidth(tc, "Type", 2)
	assert.Greater(t, tight, 0.0)
	assert.InDelta(t, tight+4*2, loose, 1e-9, "spacing after each of 4 graphemes")
}

func TestRenderPNG(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.preview")
	defer teardown()
	//
	eval := spacing.NewEvaluator(spacing.NewCurve(15, 2), 16, 0, false)
	lines := Lines([]float64{12, 16, 24}, eval)
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, lines, Options{Text: "Type"}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	b := img.Bounds()
	assert.Greater(t, b.Dy(), 12+16+24)
	assert.Greater(t, b.Dx(), 130)
	// some pixels carry ink
	inked := false
	for y := b.Min.Y; y < b.Max.Y && !inked; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked)
}

func TestRenderFixedWidthAndErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.preview")
	defer teardown()
	//
	img, err := Render([]Line{{Size: 20}}, Options{Text: "Type", Width: 300})
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	//
	_, err = Render(nil, Options{Text: "Type"})
	assert.ErrorIs(t, err, ErrNoLines)
	_, err = Render([]Line{{Size: -5}}, Options{Text: "Type"})
	assert.Error(t, err)
}
