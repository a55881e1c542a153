package rules

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/vvka-141/ddexcheck/internal/identifier"
	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

type identifierKind struct {
	element     string
	label       string
	valid       func(string) bool
	emptyCode   string
	invalidCode string
	format      string
}

var identifierKinds = []identifierKind{
	{
		element:     "GRid",
		label:       "GRid",
		valid:       identifier.ValidGRid,
		emptyCode:   ddex.CodeEmptyGRid,
		invalidCode: ddex.CodeInvalidGRid,
		format:      "GRid is A1 followed by 5 + 10 + 1 alphanumeric characters (e.g. A1B2C3D4E5F6G7H8I9)",
	},
	{
		element:     "ISRC",
		label:       "ISRC",
		valid:       identifier.ValidISRC,
		emptyCode:   ddex.CodeEmptyISRC,
		invalidCode: ddex.CodeInvalidISRC,
		format:      "ISRC is a 2-letter country code, 3-character registrant code and 7 digits (e.g. USRC17607839)",
	},
	{
		element:     "ISAN",
		label:       "ISAN",
		valid:       identifier.ValidISAN,
		emptyCode:   ddex.CodeEmptyISAN,
		invalidCode: ddex.CodeInvalidISAN,
		format:      "ISAN is 12 hexadecimal characters, hyphens optional (e.g. 0000-3BAB-9352)",
	},
	{
		element:     "VISAN",
		label:       "V-ISAN",
		valid:       identifier.ValidVISAN,
		emptyCode:   ddex.CodeEmptyVISAN,
		invalidCode: ddex.CodeInvalidVISAN,
		format:      "V-ISAN is 24 hexadecimal characters, hyphens optional",
	},
	{
		element:     "ICPN",
		label:       "ICPN",
		valid:       identifier.ValidICPN,
		emptyCode:   ddex.CodeEmptyICPN,
		invalidCode: ddex.CodeInvalidICPN,
		format:      "ICPN is a 12-digit UPC or a 13-digit EAN",
	},
}

func (e *Engine) checkIdentifiers(in Input) []ddex.Issue {
	var issues []ddex.Issue
	for _, kind := range identifierKinds {
		for _, el := range xmltree.FindAll(in.Root, kind.element) {
			issues = append(issues, e.checkIdentifier(kind, el)...)
		}
	}
	return issues
}

func (e *Engine) checkIdentifier(kind identifierKind, el *etree.Element) []ddex.Issue {
	value := xmltree.Text(el)
	if value == "" {
		return []ddex.Issue{issueAt(el, ddex.SeverityError, kind.emptyCode,
			kind.label+" element must not be empty", "",
			"Provide a valid "+kind.label+" value")}
	}

	context := fmt.Sprintf("%s value: '%s'", kind.label, value)
	if !kind.valid(value) {
		return []ddex.Issue{issueAt(el, ddex.SeverityError, kind.invalidCode,
			fmt.Sprintf("Invalid %s format: %s", kind.label, value), context, kind.format)}
	}

	switch kind.element {
	case "ISRC":
		if e.opts.ISRCYear && identifier.ISRCYearSuspicious(value, e.opts.Now(), ddex.ISRCFutureYearWindow) {
			year := value[5:7]
			return []ddex.Issue{issueAt(el, ddex.SeverityWarning, ddex.CodeSuspiciousISRCYear,
				"ISRC year code may be incorrect: "+year, "year code: "+year,
				"Check the year code of the ISRC")}
		}
	case "ICPN":
		if e.opts.ICPNChecksum && !identifier.ICPNChecksumValid(value) {
			return []ddex.Issue{issueAt(el, ddex.SeverityWarning, ddex.CodeInvalidICPNChecksum,
				"ICPN check digit may be incorrect: "+value, context,
				"Check the ICPN check digit")}
		}
	}
	return nil
}
