package resources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/npillmayer/typecontrol/core"
)

// AppKey names the application folder inside the user's cache directory.
const AppKey = "typecontrol"

// CacheEnv is the environment variable overriding the cache directory.
const CacheEnv = "TYPECONTROL_FONT_CACHE"

// DownloadCachedFile will download a url to a local file (usually located in the
// user's cache directory).
func DownloadCachedFile(ctx context.Context, path string, url string) error {
	return download(ctx, http.DefaultClient, path, url)
}

func download(ctx context.Context, client *http.Client, path string, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "invalid download URL %s", url)
	}
	resp, err := client.Do(req)
	if err != nil {
		return core.WrapError(err, core.ECONNECTION, "cannot download %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("response: %v", resp.Status)
		return core.WrapError(err, core.ECONNECTION, "cannot download %s", url)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create file in %s", filepath.Dir(path))
	}
	defer os.Remove(tmp.Name()) // no-op after successful rename
	if _, err = io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return core.WrapError(err, core.ECONNECTION, "download of %s interrupted", url)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	tracer().Debugf("downloaded %s to %s", url, path)
	return os.Rename(tmp.Name(), path)
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from TYPECONTROL_FONT_CACHE
// if set, from os.UserCacheDir() plus the application key otherwise.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(subfolders ...string) (string, error) {
	cachedir := os.Getenv(CacheEnv)
	if cachedir == "" {
		userdir, err := os.UserCacheDir()
		if err != nil {
			return "", core.WrapError(err, core.EMISSING, "user cache directory not available")
		}
		cachedir = filepath.Join(userdir, AppKey)
	}
	cachedir = filepath.Join(append([]string{cachedir}, subfolders...)...)
	tracer().Debugf("caching in %s", cachedir)
	if _, err := os.Stat(cachedir); os.IsNotExist(err) {
		if err = os.MkdirAll(cachedir, 0755); err != nil {
			return "", core.WrapError(err, core.EINVALID, "cannot create cache directory %s", cachedir)
		}
	}
	return cachedir, nil
}
