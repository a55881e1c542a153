package rules

import (
	"fmt"

	"github.com/vvka-141/ddexcheck/internal/identifier"
	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

var languageElements = []string{"LanguageOfPerformance", "LanguageOfDubbing", "LanguageOfSubtitles"}

func (e *Engine) checkLanguages(in Input) []ddex.Issue {
	var issues []ddex.Issue
	for _, el := range xmltree.FindAll(in.Root, languageElements...) {
		value := xmltree.Text(el)
		if value == "" {
			continue
		}
		context := fmt.Sprintf("language code: '%s'", value)
		switch {
		case !identifier.ValidLanguage(value):
			issues = append(issues, issueAt(el, ddex.SeverityWarning, ddex.CodeInvalidLanguage,
				"Possibly invalid language code: "+value, context,
				"Use an ISO 639-1 or ISO 639-2 code, optionally with a region (e.g. en-US)"))
		case e.opts.Registry && !identifier.KnownLanguage(value):
			issues = append(issues, issueAt(el, ddex.SeverityWarning, ddex.CodeUnknownLanguage,
				"Language code is not a registered ISO 639 language: "+value, context,
				"Check the language code against the ISO 639 registry"))
		}
	}
	return issues
}
