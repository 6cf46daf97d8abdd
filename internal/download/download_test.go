package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchNamed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg bytes"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "textures")
	path, err := Fetch(context.Background(), srv.Client(), srv.URL+"/x.jpg", dir, "00_earthmap1k.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "00_earthmap1k.jpg"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFetchDerivesName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="earth pack.zip"`)
		_, _ = w.Write([]byte("PK"))
	}))
	defer srv.Close()

	path, err := Fetch(context.Background(), nil, srv.URL+"/download?id=1", t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "earth_pack.zip", filepath.Base(path))
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dir := t.TempDir()
	_, err := Fetch(context.Background(), srv.Client(), srv.URL+"/missing.png", dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestFetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fetch(ctx, srv.Client(), srv.URL, t.TempDir(), "a.png")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResponseName(t *testing.T) {
	h := http.Header{}
	assert.Equal(t, "04_earthcloudmap.jpg", responseName("https://host/t/04_earthcloudmap.jpg?raw=1", h))
	h.Set("Content-Type", "image/png")
	assert.Equal(t, "clouds.png", responseName("https://host/clouds", h))
	assert.Equal(t, "download.bin", responseName("", http.Header{}))

	cd := http.Header{}
	cd.Set("Content-Disposition", "attachment; filename*=UTF-8''earth%20maps.zip")
	assert.Equal(t, "earth maps.zip", responseName("https://host/get", cd))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://h/a/b.jpg", JoinURL("https://h/a/", "/b.jpg"))
	assert.Equal(t, "https://h/a/b.jpg", JoinURL("https://h/a", "b.jpg"))
}
