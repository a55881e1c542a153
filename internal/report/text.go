package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

const (
	ruleWide   = 60
	ruleNarrow = 40
)

// textWriter accumulates the first write error so renderers can stay linear.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) line(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format+"\n", args...)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// Text renders a single result for a terminal.
func Text(w io.Writer, r ddex.Result, opts Options) error {
	st := opts.styles(w)
	out := &textWriter{w: w}

	out.line("%s", st.Title.Render("DDEX validation result"))
	out.line("%s", strings.Repeat("=", ruleWide))
	if r.FilePath != "" {
		out.line("%s %s", st.Label.Render("File:        "), r.FilePath)
	}
	status := st.Success.Render(SymbolCheck + " valid")
	if !r.Valid {
		status = st.Error.Render(SymbolCross + " invalid")
	}
	out.line("%s %s", st.Label.Render("Status:      "), status)
	out.line("%s %s", st.Label.Render("Message type:"), orUnknown(r.MessageType))
	out.line("%s %s", st.Label.Render("DDEX version:"), orUnknown(r.Version))
	out.line("%s %d", st.Label.Render("Errors:      "), len(r.Errors))
	out.line("%s %d", st.Label.Render("Warnings:    "), len(r.Warnings))
	if r.Duration > 0 {
		out.line("%s %.3fs", st.Label.Render("Time:        "), r.Duration.Seconds())
	}

	writeIssueSection(out, st.Error, "Errors", r.Errors)
	writeIssueSection(out, st.Warning, "Warnings", r.Warnings)
	if opts.Verbose {
		writeIssueSection(out, st.Muted, "Info", r.Info)
	}
	return out.err
}

func writeIssueSection(out *textWriter, heading lipgloss.Style, title string, issues []ddex.Issue) {
	if len(issues) == 0 {
		return
	}
	out.line("")
	out.line("%s", heading.Render(title))
	out.line("%s", strings.Repeat("-", ruleNarrow))
	for i, issue := range issues {
		out.line("%d. %s", i+1, issue.String())
	}
}

// BatchItem is one row of a batch report.
type BatchItem struct {
	// File is the path shown to the user, relative to the batch root.
	File   string      `json:"file"`
	Result ddex.Result `json:"result"`
}

// BatchText renders a per-file status list followed by the run statistics.
func BatchText(w io.Writer, items []BatchItem, stats ddex.StatisticsSummary, opts Options) error {
	st := opts.styles(w)
	out := &textWriter{w: w}

	out.line("%s", st.Title.Render("DDEX batch validation"))
	out.line("%s", strings.Repeat("=", ruleWide))
	for _, item := range items {
		if item.Result.Valid {
			out.line("%s %s", st.Success.Render(SymbolCheck), item.File)
		} else {
			out.line("%s %s", st.Error.Render(SymbolCross), item.File)
		}
		if !item.Result.Valid || opts.Verbose {
			out.line("    errors: %d, warnings: %d", len(item.Result.Errors), len(item.Result.Warnings))
		}
		if opts.Verbose {
			for _, issue := range item.Result.Errors {
				out.line("    %s %s", SymbolBullet, issue.String())
			}
		}
	}

	out.line("")
	out.line("%s", st.Heading.Render("Statistics"))
	out.line("%s", strings.Repeat("-", ruleNarrow))
	out.line("Total files:    %d", stats.TotalFiles)
	out.line("Valid files:    %s", st.Success.Render(fmt.Sprint(stats.ValidFiles)))
	out.line("Invalid files:  %s", st.Error.Render(fmt.Sprint(stats.InvalidFiles)))
	out.line("Success rate:   %.2f%%", stats.SuccessRate)
	out.line("Total errors:   %d", stats.TotalErrors)
	out.line("Total warnings: %d", stats.TotalWarnings)
	if stats.TotalTime > 0 {
		out.line("Total time:     %.3fs", stats.TotalTime)
	}
	if len(stats.ErrorCodes) > 0 {
		out.line("")
		out.line("%s", st.Heading.Render("Most frequent errors"))
		for i, cc := range stats.ErrorCodes {
			if i == topCodes {
				break
			}
			out.line("  %-32s %d", cc.Code, cc.Count)
		}
	}
	return out.err
}

const topCodes = 10

// MessageInfo is the envelope summary shown by the info command.
type MessageInfo struct {
	File      string       `json:"file"`
	SizeBytes int64        `json:"file_size"`
	Lines     int          `json:"line_count"`
	Message   ddex.Message `json:"message"`
	Warnings  []string     `json:"warnings,omitempty"`
}

// InfoText renders a message summary.
func InfoText(w io.Writer, info MessageInfo, opts Options) error {
	st := opts.styles(w)
	out := &textWriter{w: w}
	out.line("%s %s", st.Label.Render("File:          "), info.File)
	out.line("%s %s", st.Label.Render("DDEX version:  "), orUnknown(info.Message.Version))
	out.line("%s %s", st.Label.Render("Message type:  "), orUnknown(info.Message.Type))
	if info.Message.SchemaVersionID != "" {
		out.line("%s %s", st.Label.Render("Schema version:"), info.Message.SchemaVersionID)
	}
	if info.Message.Language != "" {
		out.line("%s %s", st.Label.Render("Language:      "), info.Message.Language)
	}
	out.line("%s %d bytes", st.Label.Render("File size:     "), info.SizeBytes)
	out.line("%s %d", st.Label.Render("Lines:         "), info.Lines)
	for _, w := range info.Warnings {
		out.line("%s %s", st.Warning.Render("Warning:       "), w)
	}
	return out.err
}
