package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/npillmayer/typecontrol/core"
	"github.com/npillmayer/typecontrol/core/font"
	xfont "golang.org/x/image/font"
)

// GoogleFontInfo describes a font family of the Google webfont service.
type GoogleFontInfo struct {
	Family   string            `json:"family"`
	Version  string            `json:"version"`
	Variants []string          `json:"variants"`
	Subsets  []string          `json:"subsets"`
	Files    map[string]string `json:"files"`
}

type googleFontsList struct {
	Items []GoogleFontInfo `json:"items"`
}

// GoogleFontsAPI is the endpoint of the Google webfont directory.
const GoogleFontsAPI = `https://www.googleapis.com/webfonts/v1/webfonts?`

// GoogleAPIKeyEnv is the environment variable holding the Google API key.
const GoogleAPIKeyEnv = "GOOGLE_API_KEY"

// errNoAPIKey flags a missing Google API key.
var errNoAPIKey = errors.New("Google API key not set")

// setupGoogleFontsDirectory loads the directory of Google fonts once per
// resolver.
func (r *Resolver) setupGoogleFontsDirectory(ctx context.Context) error {
	r.googleOnce.Do(func() {
		r.googleErr = r.loadGoogleFontsDirectory(ctx)
	})
	return r.googleErr
}

func (r *Resolver) loadGoogleFontsDirectory(ctx context.Context) error {
	if r.GoogleAPIKey == "" {
		tracer().Infof("%v", errNoAPIKey)
		return core.WrapError(errNoAPIKey, core.EMISSING,
			`Google Fonts API-key must be set as %s in environment;
      please refer to https://developers.google.com/fonts/docs/developer_api`, GoogleAPIKeyEnv)
	}
	values := url.Values{
		"sort": []string{"alpha"},
		"key":  []string{r.GoogleAPIKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.GoogleAPI+values.Encode(), nil)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "invalid Google Fonts endpoint")
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		tracer().Errorf("Google Fonts API request not OK: %s", err.Error())
		return core.WrapError(err, core.ECONNECTION,
			"could not get fonts-directory from Google font service")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		tracer().Errorf("Google Fonts API request not OK: %v", resp.Status)
		err := fmt.Errorf("response: %v", resp.Status)
		return core.WrapError(err, core.ECONNECTION,
			"could not get fonts-directory from Google font service")
	}
	list, err := decodeGoogleFontsList(resp.Body)
	if err != nil {
		return err
	}
	r.google = list
	tracer().Infof("%d fonts in Google Fonts directory", len(list.Items))
	return nil
}

func decodeGoogleFontsList(r io.Reader) (googleFontsList, error) {
	var list googleFontsList
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return list, core.WrapError(err, core.EFORMAT,
			"could not decode fonts-list from Google font service")
	}
	return list, nil
}

// FindGoogleFont searches the Google Fonts directory for the family with a
// given name and returns the variant closest to a style and weight.
func (r *Resolver) FindGoogleFont(ctx context.Context, name string, style xfont.Style,
	weight xfont.Weight) (GoogleFontInfo, string, error) {
	//
	if err := r.setupGoogleFontsDirectory(ctx); err != nil {
		return GoogleFontInfo{}, "", err
	}
	descs := make([]font.Descriptor, len(r.google.Items))
	for i, fi := range r.google.Items {
		descs[i] = font.Descriptor{Family: fi.Family, Variants: fi.Variants}
	}
	pattern := "^" + regexp.QuoteMeta(strings.ToLower(name)) + "$"
	desc, variant, confidence := font.ClosestMatch(descs, pattern, style, weight)
	tracer().Debugf("closest Google match for %s: %s|%s, confidence %d", name, desc.Family, variant, confidence)
	if confidence == font.NoConfidence {
		return GoogleFontInfo{}, "", core.Error(core.EMISSING, "font %s not found in Google Fonts directory", name)
	}
	for _, fi := range r.google.Items {
		if fi.Family == desc.Family {
			return fi, variant, nil
		}
	}
	return GoogleFontInfo{}, "", core.Error(core.EINTERNAL, "inconsistent Google Fonts directory")
}

// CacheGoogleFont downloads a variant of a Google font into the cache
// directory, if not already present, and returns the path of the cached file.
func (r *Resolver) CacheGoogleFont(ctx context.Context, fi GoogleFontInfo, variant string) (string, error) {
	fileURL, ok := fi.Files[variant]
	if !ok {
		return "", core.Error(core.EMISSING, "font %s has no variant %s", fi.Family, variant)
	}
	style, weight := variantStyleAndWeight(variant)
	ext := path.Ext(fileURL)
	if ext == "" {
		ext = ".ttf"
	}
	fpath := filepath.Join(r.CacheDir, font.NormalizeFontname(fi.Family, style, weight)+ext)
	if fileExists(fpath) {
		tracer().Debugf("font %s|%s already cached", fi.Family, variant)
		return fpath, nil
	}
	if err := download(ctx, r.Client, fpath, fileURL); err != nil {
		return "", err
	}
	return fpath, nil
}

// variantStyleAndWeight interprets a Google variant name like "700italic".
func variantStyleAndWeight(variant string) (xfont.Style, xfont.Weight) {
	style := xfont.StyleNormal
	if strings.HasSuffix(variant, "italic") {
		style = xfont.StyleItalic
		variant = strings.TrimSuffix(variant, "italic")
	}
	switch variant {
	case "", "regular":
		return style, xfont.WeightNormal
	}
	var w int
	if _, err := fmt.Sscanf(variant, "%d", &w); err != nil {
		return style, xfont.WeightNormal
	}
	return style, font.WeightFromCSS(w)
}

// ListGoogleFonts produces a listing of available fonts from the Google webfont
// service, with font-family names matching a given pattern.
//
// If not already done, the list of fonts will be downloaded from Google.
func (r *Resolver) ListGoogleFonts(ctx context.Context, pattern string) ([]GoogleFontInfo, error) {
	if err := r.setupGoogleFontsDirectory(ctx); err != nil {
		return nil, err
	}
	return listGoogleFonts(r.google, pattern)
}

func listGoogleFonts(list googleFontsList, pattern string) ([]GoogleFontInfo, error) {
	rx, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot list Google fonts: invalid pattern")
	}
	var found []GoogleFontInfo
	for i, finfo := range list.Items {
		if rx.MatchString(finfo.Family) {
			tracer().Debugf("[%4d] %-20s: %s %v", i, finfo.Family, finfo.Version, finfo.Variants)
			found = append(found, finfo)
		}
	}
	return found, nil
}
