package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ddexcheck/internal/checksum"
	"github.com/vvka-141/ddexcheck/internal/config"
	"github.com/vvka-141/ddexcheck/internal/files/scanner"
	"github.com/vvka-141/ddexcheck/internal/metrics"
	"github.com/vvka-141/ddexcheck/internal/report"
	"github.com/vvka-141/ddexcheck/internal/store"
	"github.com/vvka-141/ddexcheck/internal/validator"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Validate every matching file in a directory",
	Long: `Validate every file in a directory whose name matches --pattern.

Files are validated concurrently; the report lists them in path order and
ends with run statistics. With --store-dsn the run and every result are
saved to PostgreSQL in one transaction.

Files that cannot be processed at all (unreadable, or the validator failed
on them) fail the command unless --continue-on-error is given, in which
case they are reported as invalid documents.

Examples:
  # All *.xml files in a directory
  ddexcheck batch ./deliveries

  # Recursive, CSV report to a file
  ddexcheck batch ./deliveries -r -o csv -f report.csv

  # Persist results and export metrics
  ddexcheck batch ./deliveries --store-dsn postgres://localhost/ddex \
      --metrics-file /var/lib/node_exporter/ddexcheck.prom`,
	Args: RequireDirectory,
	RunE: runBatch,
}

type batchFlagValues struct {
	validationFlagValues
	pattern         string
	recursive       bool
	continueOnError bool
}

var batchFlags batchFlagValues

func init() {
	rootCmd.AddCommand(batchCmd)
	addValidationFlags(batchCmd, &batchFlags.validationFlagValues)

	batchCmd.Flags().StringVarP(&batchFlags.pattern, "pattern", "p", "",
		fmt.Sprintf("File name pattern (default: %q)", ddex.DefaultPattern))
	batchCmd.Flags().BoolVarP(&batchFlags.recursive, "recursive", "r", false,
		"Search sub-directories")
	batchCmd.Flags().BoolVar(&batchFlags.continueOnError, "continue-on-error", false,
		"Report files that cannot be processed as invalid instead of failing")
}

func (f *batchFlagValues) layer(cmd *cobra.Command) config.ProjectConfig {
	l := f.validationFlagValues.layer(cmd)
	l.Pattern = f.pattern
	if fl := cmd.Flags().Lookup("recursive"); fl != nil && fl.Changed {
		l.Recursive = config.Bool(f.recursive)
	}
	return l
}

// processingCodes mark results for files that were never validated.
var processingCodes = []string{
	ddex.CodeFileNotFound,
	ddex.CodeFileReadError,
	ddex.CodeFileEncodingError,
	ddex.CodeBatchProcessing,
}

func runBatch(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(batchFlags.layer(cmd))
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(settings.Output)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, settings)
	defer syncLogger(logger)

	root := args[0]
	scan, err := scanner.NewScanner(checksum.New()).Scan(root, scanner.Options{
		Pattern:   settings.Pattern,
		Recursive: settings.Recursive,
	})
	if err != nil {
		return err
	}
	if len(scan.Documents) == 0 {
		return fmt.Errorf("%w: no files matching %q in %s", ddex.ErrNoInputFiles, settings.Pattern, root)
	}
	logger.Info("Found %d file(s) in %s", len(scan.Documents), root)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := validator.New(settings.Options, logger)
	stats := ddex.NewStatistics()
	stats.Start()
	started := time.Now()
	results := v.ValidateBatch(ctx, scan.Paths())
	stats.Stop()

	items := make([]report.BatchItem, len(results))
	records := make([]store.Record, len(results))
	for i, doc := range scan.Documents {
		stats.Add(results[i])
		items[i] = report.BatchItem{File: doc.RelativePath, Result: results[i]}
		records[i] = store.Record{Path: doc.RelativePath, Checksum: doc.Checksum, Result: results[i]}
	}
	summary := stats.Summary()

	opts := report.Options{Verbose: getVerboseFlag(cmd)}
	if err := writeOutput(cmd, batchFlags.outputFile, func(w io.Writer) error {
		return report.WriteBatch(w, format, items, summary, opts)
	}); err != nil {
		return err
	}

	if settings.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.ObserveBatch(results, summary)
		if err := rec.WriteTextfile(settings.MetricsFile); err != nil {
			return err
		}
		logger.Verbose("Metrics written to %s", settings.MetricsFile)
	}

	if settings.StoreDSN != "" {
		run := store.NewRun(summary, started, time.Now())
		if err := saveRun(ctx, settings.StoreDSN, logger, run, records); err != nil {
			return err
		}
		logger.Info("Saved run %s", run.ID)
	}

	if !batchFlags.continueOnError {
		if failed := countProcessingFailures(results); failed > 0 {
			return fmt.Errorf("%d file(s) could not be processed (use --continue-on-error to report them as invalid)", failed)
		}
	}
	return resultError(results...)
}

func countProcessingFailures(results []ddex.Result) int {
	n := 0
	for _, r := range results {
		for _, code := range processingCodes {
			if len(r.IssuesByCode(code)) > 0 {
				n++
				break
			}
		}
	}
	return n
}

func saveRun(ctx context.Context, dsn string, logger ddex.Logger, run store.Run, records []store.Record) error {
	s, err := store.Open(ctx, dsn, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Migrate(ctx); err != nil {
		return err
	}
	return s.SaveRun(ctx, run, records)
}
