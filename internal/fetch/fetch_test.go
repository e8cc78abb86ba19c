package fetch

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	const body = "NAME,CODE\nAngola,AGO\n"
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(body))
	}))
	defer server.Close()

	destDir := filepath.Join(t.TempDir(), "downloads")
	path, err := Fetch(server.URL+"/data/countries.csv", destDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(destDir, "countries.csv"), path)
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, string(contents))
	assert.Contains(t, gotUserAgent, "csvseek")
}

func TestFetchNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := Fetch(server.URL+"/missing.csv", t.TempDir())
	assert.ErrorIs(t, err, ErrFetch)
}

func TestFetchConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := Fetch(server.URL+"/countries.csv", t.TempDir())
	assert.ErrorIs(t, err, ErrFetch)
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "countries.csv", localName("https://example.com/a/b/countries.csv"))
	assert.Equal(t, "download.csv", localName("https://example.com/"))
	assert.Equal(t, "download.csv", localName("https://example.com"))
}
