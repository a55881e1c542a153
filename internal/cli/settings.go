package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ddexcheck/internal/config"
	"github.com/vvka-141/ddexcheck/internal/logging"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// configDir is where ddexcheck.yaml and .env are looked up.
var configDir = "."

// validationFlagValues are the flags shared by validate and batch.
type validationFlagValues struct {
	schemaPath, schemaDir             string
	strict, noBusinessRules, noSchema bool
	output, outputFile                string
	workers                           int
	storeDSN, metricsFile             string
}

func addValidationFlags(cmd *cobra.Command, f *validationFlagValues) {
	cmd.Flags().StringVarP(&f.schemaPath, "schema", "s", "",
		"Explicit XSD file; wins over version-based lookup when it exists")
	cmd.Flags().StringVarP(&f.schemaDir, "schema-dir", "d", "",
		"Directory with one sub-directory per DDEX version\n"+
			"Precedence: --schema-dir > $DDEXCHECK_SCHEMA_DIR > ddexcheck.yaml > "+ddex.DefaultSchemaDir)
	cmd.Flags().BoolVar(&f.strict, "strict", false,
		"Treat every warning as an error")
	cmd.Flags().BoolVar(&f.noBusinessRules, "no-business-rules", false,
		"Skip business rules; only check well-formedness and the XSD")
	cmd.Flags().BoolVar(&f.noSchema, "no-schema", false,
		"Skip XSD validation")
	cmd.Flags().StringVarP(&f.output, "output", "o", "",
		"Output format: text|json|xml|csv (default: text)")
	cmd.Flags().StringVarP(&f.outputFile, "output-file", "f", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().IntVar(&f.workers, "workers", 0,
		fmt.Sprintf("Documents validated concurrently (default: %d)", ddex.DefaultWorkers))
	cmd.Flags().StringVar(&f.storeDSN, "store-dsn", "",
		"PostgreSQL DSN to persist results (or $DDEXCHECK_STORE_DSN)")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "",
		"Write Prometheus metrics to this file (node_exporter textfile format)")
}

// layer turns explicitly set flags into the highest-precedence config layer.
func (f *validationFlagValues) layer(cmd *cobra.Command) config.ProjectConfig {
	l := config.ProjectConfig{
		SchemaDir:   f.schemaDir,
		SchemaPath:  f.schemaPath,
		Output:      f.output,
		Workers:     f.workers,
		MetricsFile: f.metricsFile,
		LogFormat:   getLogFormatFlag(cmd),
		Store:       config.StoreConfig{DSN: f.storeDSN},
	}
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("strict") {
		l.Strict = config.Bool(f.strict)
	}
	if changed("no-business-rules") {
		l.BusinessRules = config.Bool(!f.noBusinessRules)
	}
	if changed("no-schema") {
		l.SkipSchema = config.Bool(f.noSchema)
	}
	return l
}

// resolveSettings merges .env, DDEXCHECK_* variables and ddexcheck.yaml
// under the flag layer.
func resolveSettings(flags config.ProjectConfig) (config.Settings, error) {
	if err := config.LoadEnvFile(configDir); err != nil {
		return config.Settings{}, err
	}
	file, err := config.LoadOptional(configDir)
	if err != nil {
		return config.Settings{}, err
	}
	env, err := config.FromEnv(os.Getenv)
	if err != nil {
		return config.Settings{}, err
	}
	return config.Resolve(file, env, flags)
}

func newLogger(cmd *cobra.Command, settings config.Settings) ddex.Logger {
	return logging.New(settings.LogFormat, getVerboseFlag(cmd))
}

func syncLogger(logger ddex.Logger) {
	if s, ok := logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

// writeOutput renders to the output file when one is given, otherwise to
// the command's stdout.
func writeOutput(cmd *cobra.Command, path string, render func(io.Writer) error) error {
	if path == "" {
		return render(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Results written to %s\n", path)
	return nil
}

// resultError maps validation outcomes to the sentinel that selects the
// exit code. A missing schema wins over ordinary invalid documents.
func resultError(results ...ddex.Result) error {
	invalid := 0
	for _, r := range results {
		if missing := r.IssuesByCode(ddex.CodeSchemaNotFound); len(missing) > 0 {
			return fmt.Errorf("%w: %s", ddex.ErrSchemaNotFound, missing[0].Message)
		}
		if !r.Valid {
			invalid++
		}
	}
	if invalid == 0 {
		return nil
	}
	if len(results) == 1 {
		return ddex.ErrInvalidDocument
	}
	return fmt.Errorf("%w: %d of %d documents", ddex.ErrInvalidDocument, invalid, len(results))
}
