// Package fetch retrieves source datasets over HTTP and resolves
// named sources from the on-disk manifest.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"

	"github.com/csvseek/csvseek/internal/util"
)

// ErrFetch indicates the source could not be retrieved or saved.
var ErrFetch = errors.New("fetch failed")

// HTTPClient is the client used for all dataset downloads.
var HTTPClient = &Client{}

// Client wraps http.Client to attach the csvseek User-Agent to every
// request.
type Client struct {
	http.Client
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "csvseek (+https://github.com/csvseek/csvseek)")
	return c.Client.Do(req)
}

func (c *Client) Get(rawURL string) (*http.Response, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// Fetch downloads rawURL into destDir and returns the path of the
// local file, which is named after the last segment of the URL path.
// The directory is created if missing and the file is written
// atomically, so a failed download never leaves a truncated dataset.
func Fetch(rawURL, destDir string) (string, error) {
	resp, err := HTTPClient.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: GET %s: %s", ErrFetch, rawURL, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrFetch, err)
	}

	if err := util.EnsureDir(destDir); err != nil {
		return "", fmt.Errorf("%w: %s", ErrFetch, err)
	}
	dest := filepath.Join(destDir, localName(rawURL))
	if err := util.TryWriteAtomic(dest, body); err != nil {
		return "", fmt.Errorf("%w: %s", ErrFetch, err)
	}
	return dest, nil
}

func localName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "download.csv"
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "download.csv"
	}
	return name
}
