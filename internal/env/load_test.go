package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	vars, err := Parse(strings.NewReader(`
# demo settings
SPACE_DEMOS_ASSETS = "assets/earth"
export SPACE_DEMOS_SEED=42
EMPTY=
QUOTED='single'
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"SPACE_DEMOS_ASSETS": "assets/earth",
		"SPACE_DEMOS_SEED":   "42",
		"EMPTY":              "",
		"QUOTED":             "single",
	}, vars)
}

func TestParseRejectsBareWords(t *testing.T) {
	_, err := Parse(strings.NewReader("OK=1\nnot a pair\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestLoadKeepsExistingEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SPACE_DEMOS_TEST_A=file\nSPACE_DEMOS_TEST_B=file\n"), 0644))

	t.Setenv("SPACE_DEMOS_TEST_A", "process")
	t.Setenv("SPACE_DEMOS_TEST_B", "")
	require.NoError(t, os.Unsetenv("SPACE_DEMOS_TEST_B"))

	require.NoError(t, Load(path))
	assert.Equal(t, "process", os.Getenv("SPACE_DEMOS_TEST_A"))
	assert.Equal(t, "file", os.Getenv("SPACE_DEMOS_TEST_B"))
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "nope.env")))
}
