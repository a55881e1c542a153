package ddex

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := cli.Execute()
//	if errors.Is(err, ddex.ErrInvalidDocument) {
//	    // at least one document did not validate
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidDocument indicates validation completed and found errors.
	ErrInvalidDocument = errors.New("document is not valid")

	// ErrSchemaNotFound indicates no XSD file could be located.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrStoreUnavailable indicates the result store could not be reached or written.
	ErrStoreUnavailable = errors.New("result store unavailable")

	// ErrNoInputFiles indicates a batch run matched no files.
	ErrNoInputFiles = errors.New("no input files")
)

// usageErrorPrefixes are the message prefixes cobra uses for argument and
// flag misuse.
var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrStoreUnavailable):
		return ExitStoreError
	case errors.Is(err, ErrInvalidDocument):
		return ExitInvalidDocuments
	case errors.Is(err, ErrSchemaNotFound):
		return ExitSchemaMissing
	case errors.Is(err, ErrNoInputFiles):
		return ExitNoInput
	}

	msg := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(msg, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
