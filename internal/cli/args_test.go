package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireFile(t *testing.T) {
	cmd := &cobra.Command{Use: "validate <file>"}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireFile(cmd, []string{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required argument: <file>")
		assert.Contains(t, err.Error(), "Example:")
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		assert.NoError(t, RequireFile(cmd, []string{"release.xml"}))
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireFile(cmd, []string{"a", "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "accepts 1 arg")
	})
}

func TestRequireDirectory(t *testing.T) {
	cmd := &cobra.Command{Use: "batch <directory>"}

	err := RequireDirectory(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required argument: <directory>")
	assert.NoError(t, RequireDirectory(cmd, []string{"."}))
}
