package rules

import (
	"fmt"

	"github.com/vvka-141/ddexcheck/internal/identifier"
	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

func (e *Engine) checkDurations(in Input) []ddex.Issue {
	var issues []ddex.Issue
	for _, el := range xmltree.FindAll(in.Root, "Duration") {
		value := xmltree.Text(el)
		if value == "" {
			continue
		}
		if !identifier.ValidDuration(value) {
			issues = append(issues, issueAt(el, ddex.SeverityError, ddex.CodeInvalidDuration,
				"Invalid duration format: "+value,
				fmt.Sprintf("Duration value: '%s'", value),
				"Use an ISO 8601 duration (e.g. PT3M45S for 3 minutes 45 seconds)"))
			continue
		}
		if !e.opts.DurationBounds {
			continue
		}
		seconds, err := identifier.DurationSeconds(value)
		if err != nil {
			continue
		}
		context := fmt.Sprintf("total seconds: %g", seconds)
		switch {
		case seconds > ddex.MaxDurationSeconds:
			issues = append(issues, issueAt(el, ddex.SeverityWarning, ddex.CodeUnusuallyLongDuration,
				fmt.Sprintf("Unusually long duration: %s (%g seconds)", value, seconds), context,
				"Check that the duration is correct"))
		case seconds < ddex.MinDurationSeconds:
			issues = append(issues, issueAt(el, ddex.SeverityWarning, ddex.CodeUnusuallyShortDuration,
				"Unusually short duration: "+value, context,
				"Check that the duration is correct"))
		}
	}
	return issues
}
