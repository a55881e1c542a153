package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireFile validates that exactly one file argument is provided.
func RequireFile(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <file>

Usage: %s

Example:
  %s release.xml --strict`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequireDirectory validates that exactly one directory argument is provided.
func RequireDirectory(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <directory>

Usage: %s

Example:
  %s ./deliveries -r -p "*.xml" -o csv -f report.csv`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
