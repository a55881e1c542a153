package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ddexcheck/internal/config"
	"github.com/vvka-141/ddexcheck/internal/validator"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the DDEX versions with a schema in the schema directory",
	Args:  cobra.NoArgs,
	RunE:  runVersions,
}

var versionsFlags struct {
	schemaDir string
}

func init() {
	rootCmd.AddCommand(versionsCmd)
	versionsCmd.Flags().StringVarP(&versionsFlags.schemaDir, "schema-dir", "d", "",
		"Directory with one sub-directory per DDEX version")
}

func runVersions(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(config.ProjectConfig{
		SchemaDir: versionsFlags.schemaDir,
		LogFormat: getLogFormatFlag(cmd),
	})
	if err != nil {
		return err
	}
	logger := newLogger(cmd, settings)
	defer syncLogger(logger)

	versions, err := validator.New(settings.Options, logger).SupportedVersions()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(versions) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No schema versions found in %s\n", settings.Options.SchemaDir)
		return nil
	}
	for _, v := range versions {
		fmt.Fprintln(out, v)
	}
	return nil
}
