package metadata

import (
	"errors"
	"fmt"

	"github.com/vvka-141/ddexcheck/internal/xmltree"
)

// EnvelopeError represents a structured error with context and helpful hints.
// It includes file path, optional line/column numbers, and actionable suggestions.
type EnvelopeError struct {
	FilePath string // Path to the file with the error
	Line     int    // Line number (0 if unknown)
	Column   int    // Column number (0 if unknown)
	Field    string // Envelope field (e.g., "type", "version") if applicable
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
}

// Error implements the error interface with rich formatting.
func (e *EnvelopeError) Error() string {
	location := e.FilePath
	if location == "" {
		location = "<input>"
	}
	switch {
	case e.Line > 0 && e.Column > 0:
		location = fmt.Sprintf("%s (line %d, col %d)", location, e.Line, e.Column)
	case e.Line > 0:
		location = fmt.Sprintf("%s (line %d)", location, e.Line)
	}

	msg := fmt.Sprintf("envelope error in %s: %s", location, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("envelope error in %s [field: %s]: %s", location, e.Field, e.Message)
	}

	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}

	return msg
}

// wrapParseError converts parser errors to EnvelopeError with line numbers.
func wrapParseError(err error, filePath string) error {
	var syntaxErr *xmltree.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &EnvelopeError{
			FilePath: filePath,
			Line:     syntaxErr.Line,
			Message:  syntaxErr.Msg,
			Hint:     "Check that all XML tags are properly closed and attributes are quoted.",
		}
	}

	return &EnvelopeError{
		FilePath: filePath,
		Message:  err.Error(),
		Hint:     "The document could not be decoded. DDEX messages must be UTF-8 encoded XML.",
	}
}
