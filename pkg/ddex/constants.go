package ddex

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // All documents valid
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration
	ExitStoreError       = 11 // Result store unreachable or write failed
	ExitInvalidDocuments = 12 // At least one document failed validation
	ExitSchemaMissing    = 13 // No XSD could be located for the document
	ExitNoInput          = 14 // Batch pattern matched no files
)

const (
	// DefaultVersion is the DDEX version whose schema is used when the
	// document's own version cannot be resolved to a schema file.
	DefaultVersion = "3.8.2"

	// DefaultSchemaDir is the schema directory used when none is configured.
	DefaultSchemaDir = "schemas/ddex"

	// DefaultPattern is the glob used to select files in batch mode.
	DefaultPattern = "*.xml"

	// DefaultWorkers is the batch worker pool size.
	DefaultWorkers = 4

	// MaxDurationSeconds and MinDurationSeconds bound a plausible track length.
	MaxDurationSeconds = 7200
	MinDurationSeconds = 1

	// MinBitRate and MaxBitRate bound a plausible audio bit rate in kbps.
	MinBitRate = 64
	MaxBitRate = 320

	// ISRCFutureYearWindow is how many years ahead an ISRC year code may point
	// before it is reported as suspicious.
	ISRCFutureYearWindow = 10
)
