package ddex

import (
	"context"
	"fmt"
)

// Options controls how documents are validated.
type Options struct {
	// SchemaPath is an explicit XSD file. When it exists it takes precedence
	// over version-based lookup in SchemaDir.
	SchemaPath string

	// SchemaDir holds one sub-directory per DDEX version.
	SchemaDir string

	// SkipSchema disables XSD validation entirely.
	SkipSchema bool

	// BusinessRules enables the business-rule categories.
	BusinessRules bool

	// Strict promotes every warning to an error when results are assembled.
	Strict bool

	// Workers bounds the number of documents validated concurrently in a batch.
	Workers int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		SchemaDir:     DefaultSchemaDir,
		BusinessRules: true,
		Workers:       DefaultWorkers,
	}
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	if o.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d: %w", o.Workers, ErrInvalidConfig)
	}
	if !o.SkipSchema && o.SchemaDir == "" && o.SchemaPath == "" {
		return fmt.Errorf("schema_dir or schema_path is required unless schema validation is skipped: %w", ErrInvalidConfig)
	}
	return nil
}

// Validator is the main interface for validating DDEX documents.
// Implementations never return an error for a document: every outcome,
// including unreadable input, is reported through a Result.
// Implementations must be safe for concurrent use by multiple goroutines.
type Validator interface {
	// ValidateString validates an in-memory XML document.
	ValidateString(xml string) Result

	// ValidateFile reads and validates one file, recording its path and size.
	ValidateFile(path string) Result

	// ValidateBatch validates many files. Results are returned in input order;
	// a failure in one file never stops the others.
	ValidateBatch(ctx context.Context, paths []string) []Result

	// MessageInfo returns the envelope metadata of a document.
	MessageInfo(xml string) (Message, error)
}
