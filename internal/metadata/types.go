package metadata

import (
	"fmt"
	"strings"
)

// Namespace is one namespace declaration found on the root element.
// Prefix is empty for the default namespace.
type Namespace struct {
	Prefix string
	URI    string
}

// ValidationResult contains the outcome of envelope validation.
// If Valid is false, Errors contains human-readable error messages.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// AddError appends an error message to the validation result and marks it as invalid.
func (v *ValidationResult) AddError(format string, args ...interface{}) {
	v.Valid = false
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// HasErrors returns true if the validation result contains errors.
func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

// ErrorString returns all validation errors joined with semicolons.
func (v *ValidationResult) ErrorString() string {
	return strings.Join(v.Errors, "; ")
}
