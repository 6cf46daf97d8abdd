package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "earth.txt")
	l := New(path)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Log("window open")
	l.Logf("loaded %d textures", 6)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"[2026-01-02 03:04:05] window open\n[2026-01-02 03:04:05] loaded 6 textures\n",
		string(data))
	assert.Equal(t, "[2026-01-02 03:04:05] loaded 6 textures", l.Last())
	assert.Len(t, l.Lines(), 2)
}

func TestMemoryOnly(t *testing.T) {
	l := New("")
	assert.Equal(t, "", l.Last())
	for i := 0; i < maxLines+10; i++ {
		l.Logf("line %d", i)
	}
	lines := l.Lines()
	require.Len(t, lines, maxLines)
	assert.True(t, strings.HasSuffix(lines[0], "line 10"))
	assert.True(t, strings.HasSuffix(l.Last(), "line 521"))
}
