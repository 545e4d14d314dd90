package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanupCommand(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"capterra_debug_sage.png", "capterra_debug_sage.html", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}

	run := func(args ...string) string {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	require.Contains(t, run("cleanup", "--dir", dir, "--dry-run"), "would remove 2 file(s)")
	require.FileExists(t, filepath.Join(dir, "capterra_debug_sage.png"))

	require.Contains(t, run("cleanup", "--dir", dir, "--dry-run=false"), "removed 2 file(s)")
	require.NoFileExists(t, filepath.Join(dir, "capterra_debug_sage.png"))
	require.FileExists(t, filepath.Join(dir, "notes.txt"))
}
