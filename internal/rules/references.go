package rules

import (
	"fmt"
	"sort"

	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// checkResourceReferences compares the set of resource references used in
// the document with the set of anchors declared through the
// ResourceReference attribute.
func checkResourceReferences(in Input) []ddex.Issue {
	referenced := make(map[string]bool)
	for _, el := range xmltree.FindAll(in.Root, "ReleaseResourceReference", "ResourceReference") {
		if v := xmltree.Text(el); v != "" {
			referenced[v] = true
		}
	}

	defined := make(map[string]bool)
	for _, el := range xmltree.WithAttr(in.Root, "ResourceReference") {
		if v, _ := xmltree.Attr(el, "ResourceReference"); v != "" {
			defined[v] = true
		}
	}

	var issues []ddex.Issue
	for _, ref := range difference(referenced, defined) {
		issues = append(issues, ddex.Issue{
			Severity:   ddex.SeverityError,
			Message:    "Reference to undefined resource: " + ref,
			Code:       ddex.CodeUndefinedResourceRef,
			Context:    "resource reference: " + ref,
			Suggestion: "Define a resource with ResourceReference=\"" + ref + "\" or fix the reference",
		})
	}
	for _, anchor := range difference(defined, referenced) {
		issues = append(issues, ddex.Issue{
			Severity:   ddex.SeverityWarning,
			Message:    "Resource is defined but never referenced: " + anchor,
			Code:       ddex.CodeUnusedResource,
			Context:    "resource anchor: " + anchor,
			Suggestion: "Consider removing the unused resource definition",
		})
	}
	return issues
}

// difference returns the sorted members of a that are not in b.
func difference(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if !b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

var duplicateChecks = []struct {
	element string
	label   string
	code    string
}{
	{"ISRC", "ISRC", ddex.CodeDuplicateISRC},
	{"GRid", "GRid", ddex.CodeDuplicateGRid},
}

// checkDuplicateIdentifiers reports every repeat of an identifier value
// after its first occurrence.
func checkDuplicateIdentifiers(in Input) []ddex.Issue {
	var issues []ddex.Issue
	for _, dc := range duplicateChecks {
		seen := make(map[string]bool)
		for _, el := range xmltree.FindAll(in.Root, dc.element) {
			value := xmltree.Text(el)
			if value == "" {
				continue
			}
			if !seen[value] {
				seen[value] = true
				continue
			}
			issues = append(issues, issueAt(el, ddex.SeverityError, dc.code,
				fmt.Sprintf("Duplicate %s: %s", dc.label, value),
				fmt.Sprintf("%s value: '%s'", dc.label, value),
				"Each "+dc.label+" must be unique within a message"))
		}
	}
	return issues
}
