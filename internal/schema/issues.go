package schema

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// elementPathPatterns extract the element a schema message is about. The
// first pattern that matches wins.
var elementPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)element '([^']+)'`),
	regexp.MustCompile(`(?i)tag '([^']+)'`),
	regexp.MustCompile(`(?i)<([^>]+)>`),
	regexp.MustCompile(`(?i)path: (\S+)`),
	regexp.MustCompile(`(?i)at (\S+)`),
}

var linePattern = regexp.MustCompile(`(?i)line (\d+)`)

type suggestion struct {
	keyword string
	text    string
}

// suggestions are checked in order against the lower-cased message.
var suggestions = []suggestion{
	{"required", "Make sure every required element is present"},
	{"invalid", "Check that the element value has the expected format"},
	{"unexpected", "Remove the element that is not allowed here"},
	{"missing", "Add the missing required element"},
	{"namespace", "Check the XML namespace declarations"},
	{"type", "Check the data type of the value"},
	{"format", "Check the data format of the value"},
	{"empty", "Provide a non-empty value"},
	{"duplicate", "Remove the duplicated element"},
	{"reference", "Check that the referenced element exists"},
}

const defaultSuggestion = "Check the document structure against the DDEX standard"

// ElementPath extracts the element named in a schema message, or "".
// Clark notation ({namespace}name) is reduced to the local name.
func ElementPath(msg string) string {
	for _, re := range elementPathPatterns {
		if m := re.FindStringSubmatch(msg); m != nil {
			p := m[1]
			if strings.HasPrefix(p, "{") {
				if i := strings.Index(p, "}"); i >= 0 {
					p = p[i+1:]
				}
			}
			return p
		}
	}
	return ""
}

// Suggestion returns the remediation hint for a schema message.
func Suggestion(msg string) string {
	lower := strings.ToLower(msg)
	for _, s := range suggestions {
		if strings.Contains(lower, s.keyword) {
			return s.text
		}
	}
	return defaultSuggestion
}

// Issues converts an outcome into SCHEMA_VALIDATION_ERROR issues.
// schemaPath is reported by base name in each issue's context.
func Issues(out Outcome, schemaPath string) []ddex.Issue {
	context := "using XSD: " + filepath.Base(schemaPath)

	switch o := out.(type) {
	case Validated:
		issues := make([]ddex.Issue, 0, len(o.Violations))
		for _, v := range o.Violations {
			line := v.Line
			if line == 0 {
				if m := linePattern.FindStringSubmatch(v.Message); m != nil {
					line, _ = strconv.Atoi(m[1])
				}
			}
			issues = append(issues, ddex.Issue{
				Severity:    ddex.SeverityError,
				Message:     "XSD validation failed: " + v.Message,
				Line:        line,
				Column:      v.Column,
				ElementPath: ElementPath(v.Message),
				Code:        ddex.CodeSchemaValidation,
				Context:     context,
				Suggestion:  Suggestion(v.Message),
			})
		}
		return issues

	case EngineFailure:
		return []ddex.Issue{{
			Severity: ddex.SeverityError,
			Message:  "XSD validation failed: " + o.Error(),
			Code:     ddex.CodeSchemaValidation,
			Context:  context,
		}}
	}
	return nil
}

// NotFoundIssue is the critical issue reported when no schema file exists
// for version.
func NotFoundIssue(version, searchPath string) ddex.Issue {
	if version == "" {
		version = "(unknown)"
	}
	return ddex.Issue{
		Severity:   ddex.SeverityError,
		Message:    fmt.Sprintf("no XSD file found for DDEX version %s", version),
		Code:       ddex.CodeSchemaNotFound,
		Context:    "search path: " + searchPath,
		Suggestion: "Place the XSD in the schema directory or pass --schema with the XSD file path",
	}
}

// LoadErrorIssue is the critical issue reported when a schema file exists
// but cannot be compiled.
func LoadErrorIssue(path string, err error) ddex.Issue {
	return ddex.Issue{
		Severity:   ddex.SeverityError,
		Message:    fmt.Sprintf("failed to load XSD file: %v", err),
		Code:       ddex.CodeSchemaLoadError,
		Context:    "XSD path: " + path,
		Suggestion: "Check that the XSD file exists and is a valid XML Schema",
	}
}
