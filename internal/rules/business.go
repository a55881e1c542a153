package rules

import (
	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

func checkBusinessLogic(in Input) []ddex.Issue {
	var issues []ddex.Issue

	for _, release := range xmltree.FindAll(in.Root, "Release") {
		if xmltree.HasDescendant(release, "ResourceList", "ResourceGroupList", "ReleaseResourceReference") {
			continue
		}
		issues = append(issues, issueAt(release, ddex.SeverityWarning, ddex.CodeMissingResources,
			"Release has no ResourceList, ResourceGroupList or ReleaseResourceReference", "",
			"A Release should reference or list its resources"))
	}

	for _, recording := range xmltree.FindAll(in.Root, "SoundRecording") {
		if xmltree.HasDescendant(recording, "Duration") {
			continue
		}
		issues = append(issues, issueAt(recording, ddex.SeverityWarning, ddex.CodeMissingDuration,
			"SoundRecording should include a Duration", "",
			"Provide a Duration for every SoundRecording"))
	}

	for _, deal := range xmltree.FindAll(in.Root, "Deal") {
		if !xmltree.HasDescendant(deal, "UseType") {
			issues = append(issues, issueAt(deal, ddex.SeverityError, ddex.CodeMissingUseType,
				"Deal has no UseType", "",
				"Every Deal must specify a UseType"))
		}
		if !xmltree.HasDescendant(deal, "Territory", "TerritoryCode") {
			issues = append(issues, issueAt(deal, ddex.SeverityError, ddex.CodeMissingTerritory,
				"Deal has no Territory", "",
				"Every Deal must specify the Territory it applies to"))
		}
	}

	issues = append(issues, checkResourceReferences(in)...)
	issues = append(issues, checkDuplicateIdentifiers(in)...)
	return issues
}
