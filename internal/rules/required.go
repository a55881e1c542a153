package rules

import (
	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// Requirement is one row of the required-element table.
//
// Element must occur somewhere below the root. When it does, every name in
// Children must occur below the first Element found; each missing child is
// reported with ChildCode.
type Requirement struct {
	Element   string
	Children  []string
	Severity  ddex.Severity
	Code      string
	ChildCode string
	Message   string
}

// RequiredElements maps a message type (root local name) to its
// requirements. Message types without an entry are not checked.
var RequiredElements = map[string][]Requirement{
	"NewReleaseMessage": {
		{
			Element: "MessageHeader",
			Children: []string{
				"MessageThreadId", "MessageId", "MessageSender",
				"MessageRecipient", "MessageCreatedDateTime",
			},
			Severity:  ddex.SeverityError,
			Code:      ddex.CodeMissingMessageHeader,
			ChildCode: ddex.CodeMissingHeaderElement,
			Message:   "Missing required MessageHeader element",
		},
		{
			Element:  "ReleaseList",
			Severity: ddex.SeverityError,
			Code:     ddex.CodeMissingReleaseList,
			Message:  "Missing required ReleaseList element",
		},
		{
			Element:  "ResourceList",
			Severity: ddex.SeverityWarning,
			Code:     ddex.CodeMissingResourceList,
			Message:  "ResourceList element is recommended",
		},
	},
	"CatalogListMessage": {
		{
			Element:  "MessageHeader",
			Severity: ddex.SeverityError,
			Code:     ddex.CodeMissingMessageHeader,
			Message:  "Missing required MessageHeader element",
		},
	},
}

func checkRequiredElements(in Input) []ddex.Issue {
	var issues []ddex.Issue
	for _, req := range RequiredElements[in.MessageType] {
		found := xmltree.FindFirst(in.Root, req.Element)
		if found == nil {
			issues = append(issues, ddex.Issue{
				Severity:   req.Severity,
				Message:    req.Message,
				Code:       req.Code,
				Suggestion: in.MessageType + " should contain a " + req.Element + " element",
			})
			continue
		}
		for _, child := range req.Children {
			if xmltree.HasDescendant(found, child) {
				continue
			}
			issues = append(issues, ddex.Issue{
				Severity:    ddex.SeverityError,
				Message:     req.Element + " is missing required element: " + child,
				ElementPath: req.Element,
				Code:        req.ChildCode,
				Context:     "missing element: " + child,
				Suggestion:  "Add a " + child + " element to " + req.Element,
			})
		}
	}
	return issues
}
