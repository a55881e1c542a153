package rules

import (
	"fmt"

	"github.com/vvka-141/ddexcheck/internal/identifier"
	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

var dateElements = []string{"ReleaseDate", "OriginalReleaseDate", "CreationDate", "StartDate", "EndDate"}

// futureDateElements may not point past today. Release and deal windows
// legitimately do.
var futureDateElements = map[string]bool{
	"CreationDate":        true,
	"OriginalReleaseDate": true,
}

func (e *Engine) checkDates(in Input) []ddex.Issue {
	var issues []ddex.Issue
	for _, el := range xmltree.FindAll(in.Root, dateElements...) {
		value := xmltree.Text(el)
		if value == "" {
			continue
		}
		context := fmt.Sprintf("date value: '%s'", value)
		if !identifier.ValidDate(value) {
			issues = append(issues, issueAt(el, ddex.SeverityError, ddex.CodeInvalidDate,
				"Invalid date format: "+value, context,
				"Use YYYY-MM-DD, YYYY-MM or YYYY"))
			continue
		}
		name := xmltree.LocalName(el)
		if e.opts.FutureDates && futureDateElements[name] && identifier.IsFutureDate(value, e.opts.Now()) {
			issues = append(issues, issueAt(el, ddex.SeverityWarning, ddex.CodeFutureDate,
				fmt.Sprintf("%s is in the future: %s", name, value), context,
				"Check that the date is correct"))
		}
	}

	for _, el := range xmltree.FindAll(in.Root, "MessageCreatedDateTime") {
		value := xmltree.Text(el)
		if value == "" || identifier.ValidDateTime(value) {
			continue
		}
		issues = append(issues, issueAt(el, ddex.SeverityError, ddex.CodeInvalidDateTime,
			"Invalid date-time format: "+value,
			fmt.Sprintf("DateTime value: '%s'", value),
			"Use an ISO 8601 date-time (e.g. 2024-01-15T10:30:00Z)"))
	}
	return issues
}
