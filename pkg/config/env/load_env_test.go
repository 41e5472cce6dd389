package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LTR_EVAL_TEST_KEY=from-file\n"), 0644))
	t.Setenv("ENV_PATH", path)
	t.Setenv("LTR_EVAL_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("LTR_EVAL_TEST_KEY"))

	require.NoError(t, LoadDotEnv("local", "ignored.env"))
	assert.Equal(t, "from-file", os.Getenv("LTR_EVAL_TEST_KEY"))
}

func TestLoadDotEnv_Missing(t *testing.T) {
	t.Setenv("ENV_PATH", "")
	missing := filepath.Join(t.TempDir(), "missing.env")

	assert.Error(t, LoadDotEnv("local", missing))
	assert.Error(t, LoadDotEnv("", missing))
	assert.NoError(t, LoadDotEnv("production", missing))
}
