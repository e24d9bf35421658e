package graph

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typecontrol/core/spacing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scaleSizes = []float64{12, 15, 19, 23, 29, 37, 46, 57, 72, 89, 112, 140}

func TestSamplePeakFitsHeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.graph")
	defer teardown()
	//
	curve := spacing.NewCurve(15, 2)
	plot := Sample(scaleSizes, 12, curve, 15, 1900, 200)
	require.Len(t, plot.Points, 1901)
	assert.Equal(t, 0.0, plot.Points[0].X)
	assert.Equal(t, 1900.0, plot.Points[1900].X)
	// left end is the reference size
	assert.InDelta(t, 100.0, plot.Points[0].Y, 1e-9)
	// right end: scaled to height/2, then strength applied once more
	assert.InDelta(t, 100+100*0.15, plot.Points[1900].Y, 1e-9)
	for _, p := range plot.Points {
		assert.LessOrEqual(t, math.Abs(p.Y-100), 100*0.15+1e-9)
	}
	assert.InDelta(t, 100/math.Abs(curve(128)), plot.Scale, 1e-9)
}

func TestSampleSelectedInTheMiddle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.graph")
	defer teardown()
	//
	curve := spacing.NewCurve(100, 3)
	plot := Sample([]float64{10, 20, 50}, 20, curve, 100, 400, 200)
	// peak is at the far end (distance 30), the near end stays within
	assert.InDelta(t, 200.0, plot.Points[400].Y, 1e-9)
	assert.Less(t, plot.Points[0].Y, 100.0, "smaller sizes get looser spacing")
	assert.Greater(t, plot.Points[0].Y, 0.0)
	assert.InDelta(t, 100.0, plot.Points[100].Y, 1e-9, "column of the selected size")
	assert.Equal(t, 100.0, plot.SizeToX(20))
}

func TestSampleFlatCurve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.graph")
	defer teardown()
	//
	plot := Sample(scaleSizes, 12, spacing.NewCurve(0, 2), 0, 100, 200)
	assert.Equal(t, 1.0, plot.Scale)
	for _, p := range plot.Points {
		assert.Equal(t, 100.0, p.Y)
	}
}

func TestSampleDegenerateInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.graph")
	defer teardown()
	//
	plot := Sample(nil, 12, spacing.NewCurve(15, 2), 15, 100, 200)
	assert.True(t, plot.Empty())
	assert.Equal(t, 1.0, plot.Scale)
	//
	plot = Sample([]float64{16, 16}, 16, spacing.NewCurve(15, 2), 15, 100, 200)
	require.Len(t, plot.Points, 101)
	assert.Equal(t, 0.0, plot.SizeToX(16))
	for _, p := range plot.Points {
		assert.Equal(t, 100.0, p.Y)
	}
}

func TestNiceTicks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.graph")
	defer teardown()
	//
	assert.Equal(t, []float64{20, 40, 60, 80, 100, 120, 140}, NiceTicks(12, 140, 10))
	assert.Equal(t, []float64{0, 0.5, 1}, NiceTicks(0, 1, 3))
	assert.Equal(t, []float64{16}, NiceTicks(16, 16, 10))
	assert.Nil(t, NiceTicks(math.NaN(), 10, 10))
	for _, r := range [][2]float64{{12, 140}, {9, 273}, {0.3, 2.9}, {100, 1000}, {10, 10.5}} {
		for count := 2; count <= 25; count++ {
			ticks := NiceTicks(r[0], r[1], count)
			require.GreaterOrEqual(t, len(ticks), 2, "range %v count %d", r, count)
			step := TickStep(r[0], r[1], count)
			mantissa := step / math.Pow(10, math.Floor(math.Log10(step)))
			assert.Contains(t, []float64{1, 2, 5, 10}, math.Round(mantissa*1e6)/1e6)
			for _, tick := range ticks {
				assert.GreaterOrEqual(t, tick, r[0]-1e-9)
				assert.LessOrEqual(t, tick, r[1]+1e-9)
			}
		}
	}
}

func TestTickCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.graph")
	defer teardown()
	//
	assert.Equal(t, 23, TickCount(1900, MinLabelGap))
	assert.Equal(t, 2, TickCount(100, MinLabelGap))
	assert.Equal(t, 23, TickCount(1900, 0))
}

func TestWriteSVG(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.graph")
	defer teardown()
	//
	plot := Sample(scaleSizes, 16, spacing.NewCurve(15, 2), 15, 600, 200)
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, plot, DefaultSVGOptions()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<?xml"))
	assert.Contains(t, out, "<path d=\"M 0 100 L 0 ")
	assert.Contains(t, out, "#00dd00")
	assert.Contains(t, out, ">100px<")
	paths, lines := 0, 0
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err, "chart must be well-formed XML")
		if el, ok := tok.(xml.StartElement); ok {
			switch el.Name.Local {
			case "path":
				paths++
			case "line":
				lines++
			}
		}
	}
	assert.Equal(t, 1, paths)
	assert.Equal(t, 2+len(scaleSizes)+1, lines)
}

func TestWriteSVGEmptyPlot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.graph")
	defer teardown()
	//
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, Sample(nil, 0, spacing.NewCurve(15, 2), 15, 300, 100), SVGOptions{}))
	assert.Contains(t, buf.String(), "no sizes")
	assert.NotContains(t, buf.String(), "<path")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteSVGReportsWriteErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.graph")
	defer teardown()
	//
	plot := Sample(scaleSizes, 16, spacing.NewCurve(15, 2), 15, 100, 50)
	assert.EqualError(t, WriteSVG(failingWriter{}, plot, DefaultSVGOptions()), "disk full")
}
