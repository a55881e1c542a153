package rules

import (
	"fmt"

	"github.com/vvka-141/ddexcheck/internal/identifier"
	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

func (e *Engine) checkTerritories(in Input) []ddex.Issue {
	var issues []ddex.Issue
	for _, el := range xmltree.FindAll(in.Root, "Territory", "TerritoryCode") {
		value := xmltree.Text(el)
		if value == "" {
			continue
		}
		context := fmt.Sprintf("territory code: '%s'", value)
		switch {
		case !identifier.ValidTerritory(value):
			issues = append(issues, issueAt(el, ddex.SeverityWarning, ddex.CodeInvalidTerritory,
				"Possibly invalid territory code: "+value, context,
				"Use an ISO 3166-1 alpha-2 code or 'Worldwide'"))
		case e.opts.Registry && !identifier.KnownTerritory(value):
			issues = append(issues, issueAt(el, ddex.SeverityWarning, ddex.CodeUnknownTerritory,
				"Territory code is not an assigned ISO 3166-1 country: "+value, context,
				"Check the territory code against the ISO 3166-1 list"))
		}
	}
	return issues
}
