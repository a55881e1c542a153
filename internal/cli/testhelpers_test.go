package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

var settingsEnvVars = []string{
	"DDEXCHECK_SCHEMA_DIR", "DDEXCHECK_SCHEMA_PATH", "DDEXCHECK_OUTPUT",
	"DDEXCHECK_PATTERN", "DDEXCHECK_STORE_DSN", "DDEXCHECK_METRICS_FILE",
	"DDEXCHECK_LOG_FORMAT", "DDEXCHECK_STRICT", "DDEXCHECK_BUSINESS_RULES",
	"DDEXCHECK_SKIP_SCHEMA", "DDEXCHECK_RECURSIVE", "DDEXCHECK_WORKERS",
}

// resetFlags restores every local flag of cmd to its default and clears
// the changed marks. Flag values are package-level globals shared by tests.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// setupCommand isolates cmd from the environment and the working directory
// and captures its stdout.
func setupCommand(t *testing.T, cmd *cobra.Command) *bytes.Buffer {
	t.Helper()

	origDir := configDir
	configDir = t.TempDir()
	for _, name := range settingsEnvVars {
		t.Setenv(name, "")
	}

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	resetFlags(cmd)

	t.Cleanup(func() {
		configDir = origDir
		cmd.SetOut(nil)
		cmd.SetErr(nil)
		resetFlags(cmd)
	})
	return out
}

func setFlag(t *testing.T, cmd *cobra.Command, name, value string) {
	t.Helper()
	require.NoError(t, cmd.Flags().Set(name, value))
}

func copyTestdata(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0o644))
	}
}
