package preview

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/npillmayer/typecontrol/core/spacing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/rivo/uniseg"
)

// Line is a single line of the preview list.
type Line struct {
	Size     float64 // font size in px
	Spacing  float64 // letter-spacing in px
	Selected bool    // Size is the reference size
}

// Lines creates the preview lines for a list of sizes, in the order given.
func Lines(sizes []float64, eval spacing.Evaluator) []Line {
	lines := make([]Line, len(sizes))
	for i, size := range sizes {
		lines[i] = Line{
			Size:     size,
			Spacing:  eval.At(size),
			Selected: size == eval.Selected,
		}
	}
	return lines
}

// Label returns the caption of a line, e.g. "16px / -0.02px".
func (l Line) Label() string {
	return fmt.Sprintf("%gpx / %.2fpx", l.Size, l.Spacing)
}

var setupGraphemes sync.Once

// Graphemes splits a text into grapheme clusters.
func Graphemes(text string) []string {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	splitter := segment.NewSegmenter(grapheme.NewBreaker(1))
	splitter.Init(strings.NewReader(text))
	var clusters []string
	for splitter.Next() {
		clusters = append(clusters, string(splitter.Bytes()))
	}
	return clusters
}

// WriteList writes the preview lines as text, one per line: a caption
// followed by the sample text. The sample text is cut at a display width of
// maxColumns terminal cells (0 means no limit), never splitting a grapheme.
// The selected line is marked with an asterisk.
func WriteList(w io.Writer, lines []Line, text string, maxColumns int) error {
	text = Truncate(text, maxColumns)
	for _, l := range lines {
		mark := " "
		if l.Selected {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %-18s %s\n", mark, l.Label(), text); err != nil {
			return err
		}
	}
	return nil
}

// Truncate cuts a text to a display width of at most maxColumns terminal
// cells, appending an ellipsis if anything was cut.
func Truncate(text string, maxColumns int) string {
	if maxColumns <= 0 || uniseg.StringWidth(text) <= maxColumns {
		return text
	}
	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cw := uniseg.StringWidth(g.Str())
		if width+cw > maxColumns-1 {
			break
		}
		b.WriteString(g.Str())
		width += cw
	}
	b.WriteString("…")
	return b.String()
}
