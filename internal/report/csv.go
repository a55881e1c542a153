package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

var (
	issueHeader = []string{"severity", "code", "line", "column", "element_path", "message", "context", "suggestion"}
	batchHeader = []string{"file", "status", "message_type", "ddex_version", "errors", "warnings", "validation_time"}
)

func itoaOrEmpty(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// CSV renders one row per issue of a single result.
func CSV(w io.Writer, r ddex.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(issueHeader); err != nil {
		return err
	}
	for _, issue := range r.Issues() {
		row := []string{
			string(issue.Severity),
			issue.Code,
			itoaOrEmpty(issue.Line),
			itoaOrEmpty(issue.Column),
			issue.ElementPath,
			issue.Message,
			issue.Context,
			issue.Suggestion,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BatchCSV renders one row per file.
func BatchCSV(w io.Writer, items []BatchItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(batchHeader); err != nil {
		return err
	}
	for _, item := range items {
		status := "valid"
		if !item.Result.Valid {
			status = "invalid"
		}
		elapsed := ""
		if item.Result.Duration > 0 {
			elapsed = fmt.Sprintf("%.3f", item.Result.Duration.Seconds())
		}
		row := []string{
			item.File,
			status,
			item.Result.MessageType,
			item.Result.Version,
			strconv.Itoa(len(item.Result.Errors)),
			strconv.Itoa(len(item.Result.Warnings)),
			elapsed,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
