package resources

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"regexp"
	"strings"

	"github.com/npillmayer/typecontrol/core"
	"github.com/npillmayer/typecontrol/core/font"
	xfont "golang.org/x/image/font"
)

// fontConfigList runs fontconfig's fc-list once per resolver and keeps the
// font descriptors it reports. If fc-list is not installed, the list stays
// empty.
func (r *Resolver) fontConfigList(ctx context.Context) []font.Descriptor {
	r.fcOnce.Do(func() {
		fcpath, err := exec.LookPath(r.FontConfigBinary)
		if err != nil {
			tracer().Infof("fontconfig not available: %v", err)
			return
		}
		out, err := exec.CommandContext(ctx, fcpath).Output()
		if err != nil {
			err = core.WrapError(err, core.EINVALID, "fontconfig binary failed: %s", fcpath)
			tracer().Errorf("%s", core.UserMessage(err))
			return
		}
		r.fcFonts, err = parseFontConfigList(bytes.NewReader(out))
		if err != nil {
			tracer().Errorf("encountered a problem reading fontconfig output: %v", err)
		}
		tracer().Infof("loaded %d fonts from fontconfig", len(r.fcFonts))
	})
	return r.fcFonts
}

// parseFontConfigList reads the output of fc-list, lines of the form
//
//    /usr/share/fonts/TTF/DejaVuSans-Bold.ttf: DejaVu Sans:style=Bold
//
// Font collections (*.ttc) are skipped.
func parseFontConfigList(r io.Reader) ([]font.Descriptor, error) {
	var descs []font.Descriptor
	scanner := bufio.NewScanner(r)
	ttc := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 2 {
			continue
		}
		fontpath := strings.TrimSpace(fields[0])
		if strings.HasSuffix(strings.ToLower(fontpath), ".ttc") {
			ttc++
			continue
		}
		family := strings.TrimSpace(fields[1])
		if comma := strings.IndexByte(family, ','); comma >= 0 {
			family = family[:comma]
		}
		family = strings.TrimPrefix(family, ".")
		var style string
		if len(fields) > 2 {
			style = strings.TrimPrefix(strings.TrimSpace(fields[2]), "style=")
		}
		descs = append(descs, font.Descriptor{
			Family:   family,
			Path:     fontpath,
			Variants: []string{variantFromStyle(style)},
		})
	}
	if ttc > 0 {
		tracer().Infof("skipping %d platform fonts: TTC not supported", ttc)
	}
	return descs, scanner.Err()
}

// variantFromStyle maps a fontconfig style to a Google-style variant name.
func variantFromStyle(style string) string {
	style = strings.ToLower(style)
	if comma := strings.IndexByte(style, ','); comma >= 0 {
		style = style[:comma]
	}
	weight := "regular"
	switch {
	case strings.Contains(style, "black"), strings.Contains(style, "heavy"):
		weight = "900"
	case strings.Contains(style, "extrabold"), strings.Contains(style, "extra bold"):
		weight = "800"
	case strings.Contains(style, "semibold"), strings.Contains(style, "demibold"):
		weight = "600"
	case strings.Contains(style, "bold"):
		weight = "700"
	case strings.Contains(style, "medium"):
		weight = "500"
	case strings.Contains(style, "extralight"), strings.Contains(style, "thin"):
		weight = "100"
	case strings.Contains(style, "light"):
		weight = "300"
	}
	if strings.Contains(style, "italic") || strings.Contains(style, "oblique") {
		if weight == "regular" {
			return "italic"
		}
		return weight + "italic"
	}
	return weight
}

// findFontConfigFont searches for a locally installed font variant using the
// fontconfig system (https://www.freedesktop.org/wiki/Software/fontconfig/).
// We call the binary instead of using the C library because of possible
// version issues.
func (r *Resolver) findFontConfigFont(ctx context.Context, name string, style xfont.Style,
	weight xfont.Weight) string {
	//
	descs := r.fontConfigList(ctx)
	if len(descs) == 0 {
		return ""
	}
	pattern := "^" + regexp.QuoteMeta(strings.ToLower(name)) + "$"
	desc, variant, confidence := font.ClosestMatch(descs, pattern, style, weight)
	tracer().Debugf("closest fontconfig match for %s: %s|%s, confidence %d", name, desc.Family, variant, confidence)
	if confidence > font.LowConfidence {
		return desc.Path
	}
	return ""
}
