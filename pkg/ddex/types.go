package ddex

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Severity classifies a validation finding.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Issue is a single validation finding.
//
// Line and Column are populated only when the parser or schema engine
// reports a source position; business rules locate issues through
// ElementPath instead. Issues are plain values and are never mutated once
// they have been placed into a Result.
type Issue struct {
	Severity    Severity `json:"severity" xml:"severity,attr"`
	Message     string   `json:"message" xml:"message"`
	Line        int      `json:"line_number,omitempty" xml:"line,attr,omitempty"`
	Column      int      `json:"column_number,omitempty" xml:"column,attr,omitempty"`
	ElementPath string   `json:"element_path,omitempty" xml:"element_path,omitempty"`
	Code        string   `json:"error_code,omitempty" xml:"code,attr,omitempty"`
	Context     string   `json:"context,omitempty" xml:"context,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty" xml:"suggestion,omitempty"`
}

// WithSeverity returns a copy of the issue carrying the given severity.
func (i Issue) WithSeverity(s Severity) Issue {
	i.Severity = s
	return i
}

// Location renders the best known position of the issue, or "" when the
// issue is document-level.
func (i Issue) Location() string {
	switch {
	case i.Line > 0 && i.Column > 0:
		return fmt.Sprintf("line %d, column %d", i.Line, i.Column)
	case i.Line > 0:
		return fmt.Sprintf("line %d", i.Line)
	case i.ElementPath != "":
		return "element: " + i.ElementPath
	}
	return ""
}

// String formats the issue for plain-text output.
func (i Issue) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(i.Severity))
	if i.Code != "" {
		b.WriteString(":")
		b.WriteString(i.Code)
	}
	b.WriteString("]")
	if loc := i.Location(); loc != "" {
		b.WriteString(" ")
		b.WriteString(loc)
	}
	b.WriteString(": ")
	b.WriteString(i.Message)
	if i.Context != "" {
		b.WriteString("\n    context: ")
		b.WriteString(i.Context)
	}
	if i.Suggestion != "" {
		b.WriteString("\n    suggestion: ")
		b.WriteString(i.Suggestion)
	}
	return b.String()
}

// Result is the aggregate outcome of validating one document.
//
// Valid is derived from Errors when the result is built with NewResult and
// is true exactly when Errors is empty. Warnings and Info never affect it.
type Result struct {
	Valid       bool
	Errors      []Issue
	Warnings    []Issue
	Info        []Issue
	MessageType string
	Version     string
	Duration    time.Duration
	FilePath    string
	FileSize    int64
}

// NewResult builds a Result from already classified issue lists.
func NewResult(errors, warnings, info []Issue) Result {
	return Result{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
		Info:     info,
	}
}

// Failure builds the single-error result used when a document cannot be
// processed at all (unreadable file, syntax error, missing schema).
func Failure(code, message string) Result {
	return NewResult([]Issue{{
		Severity: SeverityError,
		Message:  message,
		Code:     code,
	}}, nil, nil)
}

// HasErrors reports whether the result contains at least one error.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether the result contains at least one warning.
func (r Result) HasWarnings() bool { return len(r.Warnings) > 0 }

// HasInfo reports whether the result contains at least one info issue.
func (r Result) HasInfo() bool { return len(r.Info) > 0 }

// TotalIssues returns the number of issues across all severities.
func (r Result) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Info)
}

// Issues returns every issue, errors first, then warnings, then info.
func (r Result) Issues() []Issue {
	all := make([]Issue, 0, r.TotalIssues())
	all = append(all, r.Errors...)
	all = append(all, r.Warnings...)
	all = append(all, r.Info...)
	return all
}

// IssuesBySeverity returns the issue list holding the given severity.
func (r Result) IssuesBySeverity(s Severity) []Issue {
	switch s {
	case SeverityError:
		return r.Errors
	case SeverityWarning:
		return r.Warnings
	case SeverityInfo:
		return r.Info
	}
	return nil
}

// IssuesByCode returns every issue carrying the given error code.
func (r Result) IssuesByCode(code string) []Issue {
	var out []Issue
	for _, issue := range r.Issues() {
		if issue.Code == code {
			out = append(out, issue)
		}
	}
	return out
}

// Summary is the flat, renderer-friendly view of a Result.
type Summary struct {
	Valid          bool    `json:"is_valid"`
	MessageType    string  `json:"message_type,omitempty"`
	Version        string  `json:"ddex_version,omitempty"`
	ErrorCount     int     `json:"errors_count"`
	WarningCount   int     `json:"warnings_count"`
	InfoCount      int     `json:"info_count"`
	TotalIssues    int     `json:"total_issues"`
	ValidationTime float64 `json:"validation_time"`
	FilePath       string  `json:"file_path,omitempty"`
	FileSize       int64   `json:"file_size,omitempty"`
}

// Summary returns the counts and metadata of the result.
func (r Result) Summary() Summary {
	return Summary{
		Valid:          r.Valid,
		MessageType:    r.MessageType,
		Version:        r.Version,
		ErrorCount:     len(r.Errors),
		WarningCount:   len(r.Warnings),
		InfoCount:      len(r.Info),
		TotalIssues:    r.TotalIssues(),
		ValidationTime: r.Duration.Seconds(),
		FilePath:       r.FilePath,
		FileSize:       r.FileSize,
	}
}

type resultJSON struct {
	Summary
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	Info     []Issue `json:"info"`
}

// MarshalJSON encodes the result as its summary plus the three issue lists.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Summary:  r.Summary(),
		Errors:   nonNil(r.Errors),
		Warnings: nonNil(r.Warnings),
		Info:     nonNil(r.Info),
	})
}

// UnmarshalJSON restores a result encoded by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = NewResult(raw.Errors, raw.Warnings, raw.Info)
	r.MessageType = raw.MessageType
	r.Version = raw.Version
	r.Duration = time.Duration(raw.ValidationTime * float64(time.Second))
	r.FilePath = raw.FilePath
	r.FileSize = raw.FileSize
	return nil
}

func nonNil(issues []Issue) []Issue {
	if issues == nil {
		return []Issue{}
	}
	return issues
}

// Message is a read-only snapshot of the envelope metadata of a DDEX message.
type Message struct {
	Type                     string `json:"message_type"`
	Version                  string `json:"ddex_version"`
	SchemaVersionID          string `json:"schema_version,omitempty"`
	BusinessProfileVersionID string `json:"business_profile_version,omitempty"`
	ReleaseProfileVersionID  string `json:"release_profile_version,omitempty"`
	Language                 string `json:"language,omitempty"`
	Namespace                string `json:"namespace,omitempty"`
}
