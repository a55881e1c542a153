package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ddexcheck/internal/config"
	"github.com/vvka-141/ddexcheck/internal/metadata"
	"github.com/vvka-141/ddexcheck/internal/report"
	"github.com/vvka-141/ddexcheck/internal/validator"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show the DDEX version and message type of a file",
	Long: `Show envelope information of a DDEX message without validating it:
DDEX version, message type, schema version, language, size and line count.
A MessageSchemaVersionId that disagrees with the namespace is reported as a
warning.

Examples:
  ddexcheck info release.xml
  ddexcheck info release.xml -o json`,
	Args: RequireFile,
	RunE: runInfo,
}

type infoFlagValues struct {
	output string
}

var infoFlags infoFlagValues

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVarP(&infoFlags.output, "output", "o", "text", "Output format: text|json")
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]
	settings, err := resolveSettings(config.ProjectConfig{LogFormat: getLogFormatFlag(cmd)})
	if err != nil {
		return err
	}
	logger := newLogger(cmd, settings)
	defer syncLogger(logger)

	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	msg, err := validator.New(settings.Options, logger).MessageInfo(string(content))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ddex.ErrInvalidDocument, path, err)
	}

	info := report.MessageInfo{
		File:      path,
		SizeBytes: stat.Size(),
		Lines:     bytes.Count(content, []byte("\n")) + 1,
		Message:   msg,
	}
	if check := metadata.Validate(msg); check.HasErrors() {
		logger.Verbose("envelope of %s is inconsistent: %s", path, check.ErrorString())
		info.Warnings = check.Errors
	}

	format, err := report.ParseFormat(infoFlags.output)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	switch format {
	case report.FormatText:
		return report.InfoText(w, info, report.Options{})
	case report.FormatJSON:
		return report.InfoJSON(w, info)
	}
	return fmt.Errorf("%w: format %q is not available for info", ddex.ErrInvalidConfig, format)
}
