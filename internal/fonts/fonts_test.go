package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("font"), 0644))
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Inter", "Inter-Bold.ttf"))
	touch(t, filepath.Join(dir, "Inter", "Inter-Regular.TTF"))
	touch(t, filepath.Join(dir, "mono.otf"))
	touch(t, filepath.Join(dir, "readme.txt"))

	list, err := ScanDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inter/Inter-Bold.ttf", "Inter/Inter-Regular.TTF", "mono.otf"}, list)

	list, err = ScanDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFindPrefersRegular(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Google_Sans", "GoogleSans-Bold.ttf"))
	touch(t, filepath.Join(dir, "Google_Sans", "GoogleSans-Regular.ttf"))

	path, err := Find("Google Sans", filepath.Join(dir, "nope"), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Google_Sans", "GoogleSans-Regular.ttf"), path)

	path, err = Find("googlesans-bold.ttf", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Google_Sans", "GoogleSans-Bold.ttf"), path)
}

func TestFindExistingPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "x.otf")
	touch(t, p)
	path, err := Find(p)
	require.NoError(t, err)
	assert.Equal(t, p, path)
}

func TestFindMissing(t *testing.T) {
	_, err := Find("Inter", t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = Find("  ")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
