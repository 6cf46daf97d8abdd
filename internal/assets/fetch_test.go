package assets

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"space-demos/internal/logger"
)

func TestMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), nil, 0644))
	assert.Equal(t, []string{"b.jpg"}, Missing(dir, []string{"a.jpg", "b.jpg"}))
}

func TestFetchEach(t *testing.T) {
	var mu sync.Mutex
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/tex/broken.jpg" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "have.jpg"), []byte("x"), 0644))
	log := logger.New("")

	written, err := Fetch(context.Background(), srv.Client(), dir,
		[]string{"have.jpg", "map.jpg", "broken.jpg"}, FetchSource{BaseURL: srv.URL + "/tex/"}, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
	assert.Equal(t, []string{filepath.Join(dir, "map.jpg")}, written)
	mu.Lock()
	assert.Equal(t, []string{"/tex/map.jpg", "/tex/broken.jpg"}, requested)
	mu.Unlock()

	data, err := os.ReadFile(filepath.Join(dir, "map.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "/tex/map.jpg", string(data))
	assert.Contains(t, log.Last(), "fetched")
}

func TestFetchArchive(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"pack/a.jpg", "pack/b.jpg", "pack/extra.jpg"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, _ = w.Write([]byte(name))
	}
	require.NoError(t, zw.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	dir := t.TempDir()
	written, err := Fetch(context.Background(), srv.Client(), dir,
		[]string{"a.jpg", "b.jpg"}, FetchSource{Archive: srv.URL + "/pack.zip", BaseURL: "unused"}, nil)
	require.NoError(t, err)
	assert.Len(t, written, 2)
	assert.Empty(t, Missing(dir, []string{"a.jpg", "b.jpg"}))
	_, err = os.Stat(filepath.Join(dir, "extra.jpg"))
	assert.True(t, os.IsNotExist(err))

	_, err = Fetch(context.Background(), srv.Client(), t.TempDir(),
		[]string{"zzz.jpg"}, FetchSource{Archive: srv.URL + "/pack.zip"}, nil)
	assert.ErrorContains(t, err, "lacks")
}

func TestFetchNothingToDo(t *testing.T) {
	written, err := Fetch(context.Background(), nil, t.TempDir(), nil, FetchSource{}, nil)
	assert.NoError(t, err)
	assert.Empty(t, written)

	_, err = Fetch(context.Background(), nil, t.TempDir(), []string{"a.jpg"}, FetchSource{}, nil)
	assert.ErrorContains(t, err, "no fetch source")
}
