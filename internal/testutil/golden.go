package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// UpdateGoldenEnv, when set, makes Golden rewrite golden files instead of
// comparing against them.
const UpdateGoldenEnv = "TASKPOP_GOLDEN_UPDATE"

// Golden compares got against testdata/<name>.golden in the package under
// test.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")
	if os.Getenv(UpdateGoldenEnv) != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, got, 0644))
		return
	}

	want, err := os.ReadFile(path)
	require.NoError(t, err, "read golden file (set %s=1 to create it)", UpdateGoldenEnv)
	require.Equal(t, string(want), string(got), "output mismatch for %s", name)
}
