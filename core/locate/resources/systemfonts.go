package resources

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/flopp/go-findfont"
	"github.com/npillmayer/typecontrol/core/font"
	xfont "golang.org/x/image/font"
)

// ListSystemFonts returns the paths of all font files installed on the
// system.
func ListSystemFonts() []string {
	return findfont.List()
}

// fontFileExtensions are the font file types we are able to load.
var fontFileExtensions = map[string]bool{".ttf": true, ".otf": true}

// FontIndex is a searchable index of font files, keyed by the lower case
// base name of each file.
type FontIndex struct {
	names *trie.Trie
	size  int
}

// NewFontIndex creates an index of font files. Files which are not
// TrueType or OpenType fonts are skipped.
func NewFontIndex(paths []string) *FontIndex {
	index := &FontIndex{names: trie.New()}
	for _, p := range paths {
		if !fontFileExtensions[strings.ToLower(filepath.Ext(p))] {
			continue
		}
		key := fontKey(p)
		if node, ok := index.names.Find(key); ok {
			files := node.Meta().(*[]string)
			*files = append(*files, p)
			continue
		}
		index.names.Add(key, &[]string{p})
		index.size++
	}
	return index
}

// Len returns the number of distinct font names in the index.
func (index *FontIndex) Len() int {
	return index.size
}

// Search returns the paths of fonts with names starting with pattern. If
// no font name starts with pattern, the fuzzy matches are returned.
// Matching ignores case and blanks.
func (index *FontIndex) Search(pattern string) []string {
	key := strings.ToLower(strings.ReplaceAll(pattern, " ", ""))
	keys := index.names.PrefixSearch(key)
	if len(keys) == 0 {
		tracer().Debugf("no font name starts with %q, searching fuzzy", pattern)
		keys = index.names.FuzzySearch(key)
	}
	var paths []string
	for _, k := range keys {
		if node, ok := index.names.Find(k); ok {
			paths = append(paths, *node.Meta().(*[]string)...)
		}
	}
	sort.Strings(paths)
	return paths
}

// SearchFonts searches the fonts installed on the system.
func SearchFonts(pattern string) []string {
	return NewFontIndex(ListSystemFonts()).Search(pattern)
}

func fontKey(fontpath string) string {
	base := filepath.Base(fontpath)
	base = base[:len(base)-len(filepath.Ext(base))]
	return strings.ToLower(strings.ReplaceAll(base, " ", ""))
}

// matchFontFile finds the font file among paths best matching a font name,
// style and weight. File names are compared without blanks, so "Open Sans"
// matches "OpenSans-Bold.ttf".
func matchFontFile(paths []string, name string, style xfont.Style, weight xfont.Weight) string {
	compact := strings.ReplaceAll(name, " ", "")
	for _, p := range paths {
		if !fontFileExtensions[strings.ToLower(filepath.Ext(p))] {
			continue
		}
		if font.Matches(p, name, style, weight) {
			return p
		}
		base := strings.ReplaceAll(filepath.Base(p), " ", "")
		if font.Matches(base, compact, style, weight) {
			return p
		}
	}
	return ""
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
