package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ddexcheck",
	Short: "Validate DDEX XML messages",
	Long: `ddexcheck validates DDEX XML messages (ERN 3.8.2 and 4.1) against the
XSD schemas and a set of business rules: identifier formats (ISRC, GRid,
ICPN, ISAN), durations, dates, territory and language codes, required
elements and resource references.

Settings are read from flags, DDEXCHECK_* environment variables (a .env file
in the working directory is loaded first) and ddexcheck.yaml, in that order
of precedence.

Exit Codes:
  0  - Success (all documents valid)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Result store unreachable or write failed
  12 - At least one document is not valid
  13 - No XSD schema found for the document
  14 - Batch pattern matched no files`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints the error, if any, to stderr.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text|json (default: text, or $DDEXCHECK_LOG_FORMAT)")
}

// getVerboseFlag reports the persistent --verbose flag, looked up through
// the parent commands so it also works before cobra merges flag sets.
func getVerboseFlag(cmd *cobra.Command) bool {
	f := cmd.Flag("verbose")
	if f == nil {
		return false
	}
	verbose, err := strconv.ParseBool(f.Value.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func getLogFormatFlag(cmd *cobra.Command) string {
	if f := cmd.Flag("log-format"); f != nil {
		return f.Value.String()
	}
	return ""
}
