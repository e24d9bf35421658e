package table

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/typecontrol/core/spacing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format is an export format for tables.
type Format int

// Export formats
const (
	FormatText Format = iota
	FormatCSV
	FormatHTML
	FormatCSS
)

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "text", "txt", "":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "html", "htm":
		return FormatHTML, nil
	case "css":
		return FormatCSS, nil
	}
	return FormatText, fmt.Errorf("unknown table format %q", name)
}

// Write exports a table in a given format. Text output is localized for
// lang (a BCP 47 tag, e.g. "de"); other formats ignore lang.
func (tbl Table) Write(w io.Writer, format Format, lang string) error {
	switch format {
	case FormatCSV:
		return tbl.WriteCSV(w)
	case FormatHTML:
		return tbl.WriteHTML(w)
	case FormatCSS:
		return tbl.WriteCSS(w, CSSOptions{})
	}
	return tbl.WriteText(w, lang)
}

// --- Text ------------------------------------------------------------------

// WriteText writes a table for terminal display, with columns aligned and
// numbers formatted for a language. The row of the selected size is marked
// with an asterisk.
func (tbl Table) WriteText(w io.Writer, lang string) error {
	tag, err := language.Parse(lang)
	if err != nil || lang == "" {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(append([]string{" "}, Header...), "\t")+"\t")
	for _, r := range tbl.Rows {
		mark := " "
		if r.Selected {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t\n", mark, r.Index,
			p.Sprintf("%g", r.Size),
			p.Sprintf("%.2f", r.Spacing),
			p.Sprintf("%.2f%%", r.Percent))
	}
	return tw.Flush()
}

// --- CSV -------------------------------------------------------------------

// WriteCSV writes a table as comma separated values. Every cell is quoted,
// rows are separated by newlines.
func (tbl Table) WriteCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	writeCSVRow(bw, Header)
	for _, r := range tbl.Rows {
		bw.WriteByte('\n')
		writeCSVRow(bw, r.Cells())
	}
	return bw.Flush()
}

func writeCSVRow(w *bufio.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		w.WriteByte('"')
	}
}

// --- HTML ------------------------------------------------------------------

// WriteHTML writes a table as an HTML <table> element. The row of the
// selected size carries class "selected".
func (tbl Table) WriteHTML(w io.Writer) error {
	return html.Render(w, tbl.HTMLNode())
}

// HTMLNode builds the HTML node tree of a table.
func (tbl Table) HTMLNode() *html.Node {
	table := element(atom.Table)
	thead := element(atom.Thead)
	tr := element(atom.Tr)
	for _, h := range Header {
		tr.AppendChild(textElement(atom.Th, h))
	}
	thead.AppendChild(tr)
	table.AppendChild(thead)
	tbody := element(atom.Tbody)
	for _, r := range tbl.Rows {
		tr := element(atom.Tr)
		if r.Selected {
			tr.Attr = append(tr.Attr, html.Attribute{Key: "class", Val: "selected"})
		}
		for _, cell := range r.Cells() {
			tr.AppendChild(textElement(atom.Td, cell))
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	return table
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

func textElement(a atom.Atom, text string) *html.Node {
	n := element(a)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

// --- CSS -------------------------------------------------------------------

// CSSOptions controls CSS export.
type CSSOptions struct {
	Prefix string // class name prefix, default "fs-"
	Em     bool   // letter-spacing in em instead of px
}

// Stylesheet builds a stylesheet with one class per size of the table,
// setting font-size and letter-spacing.
func (tbl Table) Stylesheet(opts CSSOptions) *css.Stylesheet {
	if opts.Prefix == "" {
		opts.Prefix = "fs-"
	}
	sheet := css.NewStylesheet()
	for _, r := range tbl.Rows {
		rule := css.NewRule(css.QualifiedRule)
		selector := "." + opts.Prefix + strconv.Itoa(r.Index)
		rule.Prelude = selector
		rule.Selectors = []string{selector}
		ls := r.SpacingText() + "px"
		if opts.Em {
			ls = trimZeros(strconv.FormatFloat(spacing.Round2(r.Percent)/100, 'f', 4, 64)) + "em"
		}
		rule.Declarations = append(rule.Declarations,
			declaration("font-size", r.SizeText()+"px"),
			declaration("letter-spacing", ls))
		sheet.Rules = append(sheet.Rules, rule)
	}
	return sheet
}

// WriteCSS writes the stylesheet of a table.
func (tbl Table) WriteCSS(w io.Writer, opts CSSOptions) error {
	_, err := io.WriteString(w, tbl.Stylesheet(opts).String()+"\n")
	return err
}

func declaration(property, value string) *css.Declaration {
	d := css.NewDeclaration()
	d.Property = property
	d.Value = value
	return d
}

func trimZeros(num string) string {
	if !strings.Contains(num, ".") {
		return num
	}
	num = strings.TrimSuffix(strings.TrimRight(num, "0"), ".")
	if num == "-0" {
		return "0"
	}
	return num
}
