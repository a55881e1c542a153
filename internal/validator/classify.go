package validator

import (
	"fmt"

	"github.com/vvka-141/ddexcheck/internal/rules"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

type bucket int

const (
	bucketErrors bucket = iota
	bucketWarnings
	bucketInfo
)

// classify places an issue in a result bucket. In strict mode warnings are
// reported as errors. The issue itself is not modified.
func classify(issue ddex.Issue, strict bool) (bucket, ddex.Severity) {
	switch issue.Severity {
	case ddex.SeverityError:
		return bucketErrors, ddex.SeverityError
	case ddex.SeverityWarning:
		if strict {
			return bucketErrors, ddex.SeverityError
		}
		return bucketWarnings, ddex.SeverityWarning
	default:
		return bucketInfo, ddex.SeverityInfo
	}
}

// assemble merges schema and rule issues, schema issues first, and appends
// the observational INFO issues.
func assemble(schemaIssues, ruleIssues []ddex.Issue, version, messageType string, strict bool) ddex.Result {
	var errs, warnings, info []ddex.Issue

	place := func(issue ddex.Issue) {
		b, severity := classify(issue, strict)
		projected := issue.WithSeverity(severity)
		switch b {
		case bucketErrors:
			errs = append(errs, projected)
		case bucketWarnings:
			warnings = append(warnings, projected)
		default:
			info = append(info, projected)
		}
	}
	for _, issue := range schemaIssues {
		place(issue)
	}
	for _, issue := range ruleIssues {
		place(issue)
	}

	if version != "" {
		info = append(info, ddex.Issue{
			Severity: ddex.SeverityInfo,
			Message:  "DDEX version detected: " + version,
			Code:     ddex.CodeVersionDetected,
		})
	}
	if messageType != "" {
		info = append(info, ddex.Issue{
			Severity: ddex.SeverityInfo,
			Message:  "message type detected: " + messageType,
			Code:     ddex.CodeMessageTypeDetected,
		})
	}

	result := ddex.NewResult(errs, warnings, info)
	result.Version = version
	result.MessageType = messageType
	return result
}

// runBusinessRules evaluates every category in order. A panic outside a
// single category, for example while building the catalog, becomes one
// BUSINESS_RULE_ERROR and discards the partial findings.
func runBusinessRules(categories func() []rules.Category, in rules.Input) (issues []ddex.Issue) {
	defer func() {
		if r := recover(); r != nil {
			issues = []ddex.Issue{{
				Severity:   ddex.SeverityError,
				Message:    fmt.Sprintf("business rule validation failed: %v", r),
				Code:       ddex.CodeBusinessRule,
				Suggestion: "Check that the XML structure is correct",
			}}
		}
	}()
	for _, c := range categories() {
		issues = append(issues, runCategory(c, in)...)
	}
	return issues
}

// runCategory evaluates one rule category. A panic is reported as a single
// BUSINESS_RULE_PROCESSING_ERROR naming the category.
func runCategory(c rules.Category, in rules.Input) (issues []ddex.Issue) {
	defer func() {
		if r := recover(); r != nil {
			issues = []ddex.Issue{{
				Severity:   ddex.SeverityError,
				Message:    fmt.Sprintf("business rule category %q failed: %v", c.Name, r),
				Code:       ddex.CodeBusinessRuleFailed,
				Context:    "category: " + c.Name,
				Suggestion: "Check that the document structure follows the DDEX standard",
			}}
		}
	}()
	return c.Check(in)
}
