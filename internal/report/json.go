package report

import (
	"encoding/json"
	"io"

	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

type resultDocument struct {
	Summary  ddex.Summary `json:"summary"`
	Errors   []ddex.Issue `json:"errors"`
	Warnings []ddex.Issue `json:"warnings"`
	Info     []ddex.Issue `json:"info,omitempty"`
}

func newResultDocument(r ddex.Result, verbose bool) resultDocument {
	doc := resultDocument{
		Summary:  r.Summary(),
		Errors:   orEmpty(r.Errors),
		Warnings: orEmpty(r.Warnings),
	}
	if verbose {
		doc.Info = r.Info
	}
	return doc
}

func orEmpty(issues []ddex.Issue) []ddex.Issue {
	if issues == nil {
		return []ddex.Issue{}
	}
	return issues
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// JSON renders a single result as an indented JSON object with a summary
// and the issue lists. Info issues are included only when verbose.
func JSON(w io.Writer, r ddex.Result, opts Options) error {
	return encodeJSON(w, newResultDocument(r, opts.Verbose))
}

type batchEntry struct {
	File string `json:"file"`
	resultDocument
}

type batchDocument struct {
	Statistics ddex.StatisticsSummary `json:"statistics"`
	Results    []batchEntry           `json:"results"`
}

// BatchJSON renders the batch statistics and every per-file result.
func BatchJSON(w io.Writer, items []BatchItem, stats ddex.StatisticsSummary) error {
	doc := batchDocument{Statistics: stats, Results: make([]batchEntry, 0, len(items))}
	for _, item := range items {
		doc.Results = append(doc.Results, batchEntry{File: item.File, resultDocument: newResultDocument(item.Result, false)})
	}
	return encodeJSON(w, doc)
}

// InfoJSON renders a message summary as JSON.
func InfoJSON(w io.Writer, info MessageInfo) error {
	return encodeJSON(w, info)
}
