package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "sumclock (devel)\n", execute(t, "version"))
}

func TestHeadlessRunIsRecorded(t *testing.T) {
	t.Setenv("SUMCLOCK_CONFIG", "")
	t.Setenv("SUMCLOCK_DEBUG", "")
	db := filepath.Join(t.TempDir(), "history.db")

	out := execute(t, "--db", db, "--duration", "1500ms", "--a", "2", "--b", "5")
	assert.True(t, strings.Contains(out, "a+b=7"), "output: %s", out)
	assert.True(t, strings.Contains(out, "seconds=1"), "output: %s", out)

	out = execute(t, "history", "--db", db)
	assert.True(t, strings.Contains(out, "A+B"))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[1]), "7"), "row: %s", lines[1])

	assert.Equal(t, "History cleared.\n", execute(t, "reset", "--db", db))
	assert.Equal(t, "No sessions recorded yet.\n", execute(t, "history", "--db", db))
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, writeFile(path, "tick_period: never\n"))

	rootCmd.SetArgs([]string{"history", "--config", path, "--db", filepath.Join(t.TempDir(), "x.db")})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err := Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")

	// Later tests must not inherit the bad file.
	require.NoError(t, rootCmd.PersistentFlags().Set("config", ""))
}

func writeFile(path, data string) error {
	return os.WriteFile(path, []byte(data), 0o644)
}
