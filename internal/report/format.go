package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatXML, FormatCSV:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: unknown output format %q (want text, json, xml or csv)", ddex.ErrInvalidConfig, s)
}

// Options controls what the renderers include.
type Options struct {
	// Verbose includes info issues, and warnings in XML output.
	Verbose bool
	// Styles is used by the text renderers. Nil means StylesFor(w).
	Styles *Styles
}

func (o Options) styles(w io.Writer) Styles {
	if o.Styles != nil {
		return *o.Styles
	}
	return StylesFor(w)
}

// Write renders a single result in the given format.
func Write(w io.Writer, format Format, r ddex.Result, opts Options) error {
	switch format {
	case FormatText:
		return Text(w, r, opts)
	case FormatJSON:
		return JSON(w, r, opts)
	case FormatXML:
		return XML(w, r, opts)
	case FormatCSV:
		return CSV(w, r)
	}
	return fmt.Errorf("%w: unknown output format %q", ddex.ErrInvalidConfig, format)
}

// WriteBatch renders a batch in the given format. XML is not offered for
// batches.
func WriteBatch(w io.Writer, format Format, items []BatchItem, stats ddex.StatisticsSummary, opts Options) error {
	switch format {
	case FormatText:
		return BatchText(w, items, stats, opts)
	case FormatJSON:
		return BatchJSON(w, items, stats)
	case FormatCSV:
		return BatchCSV(w, items)
	}
	return fmt.Errorf("%w: format %q is not available for batches", ddex.ErrInvalidConfig, format)
}
