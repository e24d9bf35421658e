package resources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/typecontrol/core"
	"github.com/npillmayer/typecontrol/core/font"
	xfont "golang.org/x/image/font"
)

// NotFound returns an application error for a missing font.
func NotFound(name string) error {
	e := fmt.Errorf("resource missing: %v", name)
	return core.WrapError(e, core.EMISSING, "font not found: %s, using %s instead", name, font.FallbackFontName)
}

// Resolver locates fonts and prepares typecases from them.
// Create resolvers with NewResolver; the zero value is not usable.
type Resolver struct {
	Registry         *font.Registry
	CacheDir         string          // font cache directory
	Client           *http.Client    // for downloads
	GoogleAPIKey     string          // empty: Google Fonts directory disabled
	GoogleAPI        string          // endpoint of the Google Fonts directory
	FontConfigBinary string          // name or path of fontconfig's fc-list
	SystemFonts      func() []string // lists installed font files
	googleOnce       sync.Once
	google           googleFontsList
	googleErr        error
	fcOnce           sync.Once
	fcFonts          []font.Descriptor
	missMu           sync.Mutex
	misses           map[string]error // fonts known to be missing, by key
}

// NewResolver creates a resolver configured from the environment. If the
// cache directory cannot be created, fonts will not be cached.
func NewResolver() *Resolver {
	cachedir, err := CacheDirPath("fonts")
	if err != nil {
		tracer().Errorf("%s", core.UserMessage(err))
	}
	return &Resolver{
		Registry:         font.GlobalRegistry(),
		CacheDir:         cachedir,
		Client:           http.DefaultClient,
		GoogleAPIKey:     os.Getenv(GoogleAPIKeyEnv),
		GoogleAPI:        GoogleFontsAPI,
		FontConfigBinary: "fc-list",
		SystemFonts:      ListSystemFonts,
	}
}

var defaultResolver *Resolver

var defaultResolverCreation sync.Once

// DefaultResolver is an application-wide resolver, created on first use.
func DefaultResolver() *Resolver {
	defaultResolverCreation.Do(func() {
		defaultResolver = NewResolver()
	})
	return defaultResolver
}

// ResolveTypeCase resolves a typecase with the default resolver and waits
// for it. If the font cannot be found, the typecase is prepared from the
// fallback font and returned together with an EMISSING error.
func ResolveTypeCase(ctx context.Context, name string, weight xfont.Weight, size float64) (*font.TypeCase, error) {
	return DefaultResolver().Resolve(name, xfont.StyleNormal, weight, size).TypeCase(ctx)
}

// --- Promises --------------------------------------------------------------

// TypeCasePromise is the result of a font resolution in progress.
type TypeCasePromise interface {
	TypeCase(ctx context.Context) (*font.TypeCase, error)
}

type fontPlusErr struct {
	font *font.TypeCase
	err  error
}

type fontLoader struct {
	await func(ctx context.Context) (*font.TypeCase, error)
}

func (loader fontLoader) TypeCase(ctx context.Context) (*font.TypeCase, error) {
	return loader.await(ctx)
}

// Resolve starts resolving a font typecase with a given size and returns a
// promise for it.
func (r *Resolver) Resolve(name string, style xfont.Style, weight xfont.Weight, size float64) TypeCasePromise {
	ch := make(chan fontPlusErr, 1)
	ctx, cancel := context.WithCancel(context.Background())
	go func(ch chan<- fontPlusErr) {
		defer close(ch)
		t, err := r.resolve(ctx, name, style, weight, size)
		ch <- fontPlusErr{font: t, err: err}
	}(ch)
	return fontLoader{
		await: func(waitctx context.Context) (*font.TypeCase, error) {
			select {
			case <-waitctx.Done():
				cancel()
				return nil, waitctx.Err()
			case res := <-ch:
				cancel()
				return res.font, res.err
			}
		},
	}
}

func (r *Resolver) resolve(ctx context.Context, name string, style xfont.Style, weight xfont.Weight,
	size float64) (*font.TypeCase, error) {
	//
	key := font.NormalizeFontname(name, style, weight)
	if isURL(name) {
		key = font.NormalizeFontname(path.Base(name), style, weight)
	}
	if r.Registry.HasFont(key) {
		tracer().Debugf("font %s found in registry", key)
		return r.Registry.TypeCase(key, size)
	}
	fpath := ""
	err := r.knownMiss(key)
	known := err != nil
	if !known {
		fpath, err = r.locate(ctx, name, style, weight)
	}
	if fpath == "" {
		if err == nil {
			err = NotFound(name)
		}
		if !known && core.Code(err) == core.EMISSING {
			r.rememberMiss(key, err)
		}
		tracer().Infof("font %s not found, falling back to %s", name, font.FallbackFontName)
		t, ferr := r.Registry.TypeCase(key, size)
		if t == nil {
			return nil, ferr
		}
		return t, err
	}
	f, err := font.LoadOpenTypeFont(fpath)
	if err != nil {
		err = core.WrapError(err, core.EFORMAT, "cannot load font file %s", fpath)
		t, _ := r.Registry.TypeCase(key, size)
		return t, err
	}
	r.Registry.StoreFont(key, f)
	return r.Registry.TypeCase(key, size)
}

// knownMiss returns the error of an earlier unsuccessful search for a font
// key, or nil.
func (r *Resolver) knownMiss(key string) error {
	r.missMu.Lock()
	defer r.missMu.Unlock()
	return r.misses[key]
}

// rememberMiss records that a font could not be found. Connection problems
// are not recorded, a later search may succeed.
func (r *Resolver) rememberMiss(key string, err error) {
	r.missMu.Lock()
	defer r.missMu.Unlock()
	if r.misses == nil {
		r.misses = make(map[string]error)
	}
	r.misses[key] = err
}

// locate returns the path of a font file, searching installed fonts, the
// cache directory and the Google Fonts directory. Names which are URLs are
// downloaded into the cache directory. A non-nil error may be returned
// together with an empty path to give a reason for the miss.
func (r *Resolver) locate(ctx context.Context, name string, style xfont.Style,
	weight xfont.Weight) (string, error) {
	//
	if isURL(name) {
		return r.downloadFont(ctx, name)
	}
	if r.SystemFonts != nil {
		if p := matchFontFile(r.SystemFonts(), name, style, weight); p != "" {
			tracer().Debugf("%s is a system font: %s", name, p)
			return p, nil
		}
	}
	if r.FontConfigBinary != "" {
		if p := r.findFontConfigFont(ctx, name, style, weight); p != "" {
			tracer().Debugf("%s found by fontconfig: %s", name, p)
			return p, nil
		}
	}
	if p := r.findCachedFont(name, style, weight); p != "" {
		tracer().Debugf("%s found in cache: %s", name, p)
		return p, nil
	}
	if r.GoogleAPIKey == "" || r.CacheDir == "" {
		return "", nil
	}
	fi, variant, err := r.FindGoogleFont(ctx, name, style, weight)
	if err != nil {
		return "", err
	}
	return r.CacheGoogleFont(ctx, fi, variant)
}

func (r *Resolver) findCachedFont(name string, style xfont.Style, weight xfont.Weight) string {
	if r.CacheDir == "" {
		return ""
	}
	entries, err := os.ReadDir(r.CacheDir)
	if err != nil {
		return ""
	}
	key := font.NormalizeFontname(name, style, weight)
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		p := filepath.Join(r.CacheDir, e.Name())
		ext := filepath.Ext(e.Name())
		if strings.TrimSuffix(e.Name(), ext) == key && fontFileExtensions[strings.ToLower(ext)] {
			return p
		}
		files = append(files, p)
	}
	return matchFontFile(files, name, style, weight)
}

func (r *Resolver) downloadFont(ctx context.Context, fontURL string) (string, error) {
	if r.CacheDir == "" {
		return "", core.Error(core.EMISSING, "no cache directory to download %s into", fontURL)
	}
	u, err := url.Parse(fontURL)
	if err != nil {
		return "", core.WrapError(err, core.EINVALID, "invalid font URL %s", fontURL)
	}
	base := path.Base(u.Path)
	if !fontFileExtensions[strings.ToLower(path.Ext(base))] {
		return "", core.Error(core.EINVALID, "font URL does not point to a .ttf or .otf file: %s", fontURL)
	}
	fpath := filepath.Join(r.CacheDir, base)
	if fileExists(fpath) {
		return fpath, nil
	}
	if err = download(ctx, r.Client, fpath, fontURL); err != nil {
		return "", err
	}
	return fpath, nil
}

func isURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}
