package resources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typecontrol/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
)

const exampleRespFragm string = `
{
    "kind": "webfonts#webfontList",
    "items": [
        {
            "kind": "webfonts#webfont",
            "family": "Anonymous Pro",
            "variants": [
                "regular",
                "italic",
                "700",
                "700italic"
            ],
            "subsets": [
                "greek",
                "latin"
            ],
            "version": "v3",
            "files": {
                "regular": "http://themes.googleusercontent.com/static/fonts/anonymouspro/v3/Zhfjj_gat3waL4JSju74E-V_5zh5b-_HiooIRUBwn1A.ttf",
                "italic": "http://themes.googleusercontent.com/static/fonts/anonymouspro/v3/q0u6LFHwttnT_69euiDbWKwIsuKDCXG0NQm7BvAgx-c.ttf",
                "700": "http://themes.googleusercontent.com/static/fonts/anonymouspro/v3/WDf5lZYgdmmKhO8E1AQud--Cz_5MeePnXDAcLNWyBME.ttf",
                "700italic": "http://themes.googleusercontent.com/static/fonts/anonymouspro/v3/_fVr_XGln-cetWSUc-JpfA1LL9bfs7wyIp6F8OC9RxA.ttf"
            }
        },
        {
            "kind": "webfonts#webfont",
            "family": "Antic",
            "variants": [
                "regular"
            ],
            "subsets": [
                "latin"
            ],
            "version": "v4",
            "files": {
                "regular": "http://themes.googleusercontent.com/static/fonts/antic/v4/hEa8XCNM7tXGzD0Uk0AipA.ttf"
            }
        }
    ]
}
`

func TestGoogleRespDecode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.resources")
	defer teardown()
	//
	list, err := decodeGoogleFontsList(strings.NewReader(exampleRespFragm))
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Anonymous Pro", list.Items[0].Family)
	found, err := listGoogleFonts(list, "^an")
	require.NoError(t, err)
	assert.Len(t, found, 2)
	found, err = listGoogleFonts(list, "pro$")
	require.NoError(t, err)
	assert.Len(t, found, 1)
	_, err = listGoogleFonts(list, "(")
	assert.Equal(t, core.EINVALID, core.Code(err))
	//
	_, err = decodeGoogleFontsList(strings.NewReader("{ not json"))
	assert.Equal(t, core.EFORMAT, core.Code(err))
}

func TestGoogleVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.resources")
	defer teardown()
	//
	s, w := variantStyleAndWeight("700italic")
	assert.Equal(t, xfont.StyleItalic, s)
	assert.Equal(t, xfont.WeightBold, w)
	s, w = variantStyleAndWeight("regular")
	assert.Equal(t, xfont.StyleNormal, s)
	assert.Equal(t, xfont.WeightNormal, w)
	s, w = variantStyleAndWeight("italic")
	assert.Equal(t, xfont.StyleItalic, s)
	assert.Equal(t, xfont.WeightNormal, w)
	_, w = variantStyleAndWeight("300")
	assert.Equal(t, xfont.WeightLight, w)
}

func TestGoogleWithoutAPIKey(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.resources")
	defer teardown()
	//
	r := &Resolver{Client: http.DefaultClient, GoogleAPI: GoogleFontsAPI}
	_, _, err := r.FindGoogleFont(context.Background(), "Antic", xfont.StyleNormal, xfont.WeightNormal)
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.ErrorIs(t, err, errNoAPIKey)
}

func TestGoogleServiceDown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.resources")
	defer teardown()
	//
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()
	r := &Resolver{Client: srv.Client(), GoogleAPI: srv.URL + "/?", GoogleAPIKey: "k"}
	_, err := r.ListGoogleFonts(context.Background(), ".*")
	assert.Equal(t, core.ECONNECTION, core.Code(err))
}

const fcListOutput = `
/usr/share/fonts/TTF/DejaVuSans-Bold.ttf: DejaVu Sans:style=Bold
/usr/share/fonts/TTF/DejaVuSans.ttf: DejaVu Sans:style=Book
/usr/share/fonts/TTF/DejaVuSans-Oblique.ttf: DejaVu Sans:style=Oblique
/usr/share/fonts/noto/NotoSans-SemiBoldItalic.ttf: Noto Sans,Noto Sans SemiBold:style=SemiBold Italic,Italic
/usr/share/fonts/noto/NotoSansCJK-Regular.ttc: Noto Sans CJK JP:style=Regular
`

func TestParseFontConfigList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.resources")
	defer teardown()
	//
	descs, err := parseFontConfigList(strings.NewReader(fcListOutput))
	require.NoError(t, err)
	require.Len(t, descs, 4, "collections are skipped")
	assert.Equal(t, "DejaVu Sans", descs[0].Family)
	assert.Equal(t, []string{"700"}, descs[0].Variants)
	assert.Equal(t, []string{"regular"}, descs[1].Variants)
	assert.Equal(t, []string{"italic"}, descs[2].Variants)
	assert.Equal(t, "Noto Sans", descs[3].Family)
	assert.Equal(t, []string{"600italic"}, descs[3].Variants)
}

func TestFontIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.resources")
	defer teardown()
	//
	index := NewFontIndex([]string{
		"/fonts/Roboto-Regular.ttf",
		"/fonts/Roboto-Bold.ttf",
		"/other/Roboto-Regular.otf",
		"/fonts/Open Sans.ttf",
		"/fonts/README.txt",
	})
	assert.Equal(t, 3, index.Len())
	assert.Equal(t, []string{"/fonts/Roboto-Bold.ttf", "/fonts/Roboto-Regular.ttf",
		"/other/Roboto-Regular.otf"}, index.Search("robo"))
	assert.Equal(t, []string{"/fonts/Open Sans.ttf"}, index.Search("Open S"))
	assert.Equal(t, []string{"/fonts/Roboto-Bold.ttf"}, index.Search("rbold"), "fuzzy")
	assert.Empty(t, index.Search("zapf"))
}

func TestCacheDirPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.resources")
	defer teardown()
	//
	base := t.TempDir()
	t.Setenv(CacheEnv, base)
	dir, err := CacheDirPath("fonts", "test")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "fonts", "test"), dir)
	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestDownloadCachedFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.resources")
	defer teardown()
	//
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logo.svg" {
			w.Write([]byte("<svg/>"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()
	dir := t.TempDir()
	target := filepath.Join(dir, "logo.svg")
	require.NoError(t, DownloadCachedFile(context.Background(), target, srv.URL+"/logo.svg"))
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(content))
	//
	err = DownloadCachedFile(context.Background(), filepath.Join(dir, "x"), srv.URL+"/nothing")
	assert.Equal(t, core.ECONNECTION, core.Code(err))
	assert.False(t, fileExists(filepath.Join(dir, "x")))
	entries, _ := os.ReadDir(dir)
	assert.Len(t, entries, 1, "no temporary files left behind")
}
