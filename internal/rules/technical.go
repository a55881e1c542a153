package rules

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

func checkTechnicalDetails(in Input) []ddex.Issue {
	var issues []ddex.Issue
	seen := make(map[*etree.Element]bool)
	for _, details := range xmltree.FindAll(in.Root, "TechnicalSoundRecordingDetails") {
		for _, el := range xmltree.FindAll(details, "BitRate") {
			if seen[el] {
				continue
			}
			seen[el] = true
			raw := xmltree.Text(el)
			if raw == "" {
				continue
			}
			rate, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				issues = append(issues, issueAt(el, ddex.SeverityError, ddex.CodeInvalidBitRate,
					"Invalid BitRate value: "+raw, "",
					"BitRate must be numeric"))
				continue
			}
			if rate < ddex.MinBitRate || rate > ddex.MaxBitRate {
				issues = append(issues, issueAt(el, ddex.SeverityWarning, ddex.CodeUnusualBitRate,
					fmt.Sprintf("Audio BitRate may be implausible: %g", rate),
					fmt.Sprintf("BitRate value: %g", rate),
					fmt.Sprintf("Audio bit rates are usually between %d and %d kbps", ddex.MinBitRate, ddex.MaxBitRate)))
			}
		}
	}
	return issues
}
