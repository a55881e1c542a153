package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// XML renders a single result as a ValidationResult document. Warnings are
// listed only when verbose.
func XML(w io.Writer, r ddex.Result, opts Options) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("ValidationResult")

	summary := root.CreateElement("Summary")
	summary.CreateElement("IsValid").SetText(strconv.FormatBool(r.Valid))
	summary.CreateElement("MessageType").SetText(r.MessageType)
	summary.CreateElement("DDEXVersion").SetText(r.Version)
	summary.CreateElement("ErrorsCount").SetText(strconv.Itoa(len(r.Errors)))
	summary.CreateElement("WarningsCount").SetText(strconv.Itoa(len(r.Warnings)))
	if r.Duration > 0 {
		summary.CreateElement("ValidationTime").SetText(fmt.Sprintf("%.6f", r.Duration.Seconds()))
	}
	if r.FilePath != "" {
		summary.CreateElement("FilePath").SetText(r.FilePath)
	}

	appendIssues(root, "Errors", "Error", r.Errors)
	if opts.Verbose {
		appendIssues(root, "Warnings", "Warning", r.Warnings)
		appendIssues(root, "Info", "Item", r.Info)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func appendIssues(root *etree.Element, listTag, itemTag string, issues []ddex.Issue) {
	if len(issues) == 0 {
		return
	}
	list := root.CreateElement(listTag)
	for _, issue := range issues {
		el := list.CreateElement(itemTag)
		el.CreateElement("Severity").SetText(string(issue.Severity))
		el.CreateElement("Message").SetText(issue.Message)
		if issue.Line > 0 {
			el.CreateElement("LineNumber").SetText(strconv.Itoa(issue.Line))
		}
		if issue.Column > 0 {
			el.CreateElement("ColumnNumber").SetText(strconv.Itoa(issue.Column))
		}
		if issue.ElementPath != "" {
			el.CreateElement("ElementPath").SetText(issue.ElementPath)
		}
		if issue.Code != "" {
			el.CreateElement("ErrorCode").SetText(issue.Code)
		}
		if issue.Context != "" {
			el.CreateElement("Context").SetText(issue.Context)
		}
		if issue.Suggestion != "" {
			el.CreateElement("Suggestion").SetText(issue.Suggestion)
		}
	}
}
