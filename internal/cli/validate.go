package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ddexcheck/internal/metrics"
	"github.com/vvka-141/ddexcheck/internal/report"
	"github.com/vvka-141/ddexcheck/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate one DDEX XML file",
	Long: `Validate one DDEX XML file against its XSD and the business rules.

The DDEX version is detected from the root namespace (or the
MessageSchemaVersionId attribute) and selects the schema in --schema-dir.

Examples:
  # Validate with default settings
  ddexcheck validate release.xml

  # Treat warnings as errors and print JSON
  ddexcheck validate release.xml --strict -o json

  # Only run the business rules
  ddexcheck validate release.xml --no-schema`,
	Args: RequireFile,
	RunE: runValidate,
}

var validateFlags validationFlagValues

func init() {
	rootCmd.AddCommand(validateCmd)
	addValidationFlags(validateCmd, &validateFlags)
}

func runValidate(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(validateFlags.layer(cmd))
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(settings.Output)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, settings)
	defer syncLogger(logger)

	v := validator.New(settings.Options, logger)
	result := v.ValidateFile(args[0])

	opts := report.Options{Verbose: getVerboseFlag(cmd)}
	if err := writeOutput(cmd, validateFlags.outputFile, func(w io.Writer) error {
		return report.Write(w, format, result, opts)
	}); err != nil {
		return err
	}

	if settings.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.Observe(result)
		if err := rec.WriteTextfile(settings.MetricsFile); err != nil {
			return err
		}
	}
	return resultError(result)
}
