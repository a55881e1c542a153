package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

func TestElementPath(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"Element 'MessageHeader': Missing child element(s).", "MessageHeader"},
		{"Element '{http://ddex.net/xml/ern/382}NewReleaseMessage': No matching global declaration", "NewReleaseMessage"},
		{"unexpected child with tag 'Foo' at position 2", "Foo"},
		{"failed validating <ISRC> with XsdPatternFacet", "ISRC"},
		{"reason: bad, path: /NewReleaseMessage/ReleaseList", "/NewReleaseMessage/ReleaseList"},
		{"error AT /a/b", "/a/b"},
		{"nothing useful here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, ElementPath(tt.msg))
		})
	}
}

func TestSuggestion(t *testing.T) {
	assert.Equal(t, "Make sure every required element is present", Suggestion("a REQUIRED attribute is missing"))
	assert.Equal(t, "Add the missing required element", Suggestion("Missing child element(s)"))
	assert.Equal(t, "Check the XML namespace declarations", Suggestion("wrong namespace"))
	assert.Equal(t, defaultSuggestion, Suggestion("No matching global declaration available for the validation root."))
}

func TestIssues_Validated(t *testing.T) {
	out := Validated{Violations: []Violation{
		{Message: "Element 'ISRC': [facet 'pattern'] The value 'x' is invalid.", Line: 7, Column: 3},
		{Message: "Element 'Title': This element is not expected. (line 12)"},
	}}

	issues := Issues(out, "/schemas/3.8.2/ern-main.xsd")
	require.Len(t, issues, 2)

	first := issues[0]
	assert.Equal(t, ddex.SeverityError, first.Severity)
	assert.Equal(t, ddex.CodeSchemaValidation, first.Code)
	assert.Equal(t, "XSD validation failed: Element 'ISRC': [facet 'pattern'] The value 'x' is invalid.", first.Message)
	assert.Equal(t, 7, first.Line)
	assert.Equal(t, 3, first.Column)
	assert.Equal(t, "ISRC", first.ElementPath)
	assert.Equal(t, "using XSD: ern-main.xsd", first.Context)
	assert.Equal(t, "Check that the element value has the expected format", first.Suggestion)

	assert.Equal(t, 12, issues[1].Line)
	assert.Equal(t, "Title", issues[1].ElementPath)
}

func TestIssues_EngineFailure(t *testing.T) {
	issues := Issues(EngineFailure{Reason: errors.New("engine crashed")}, "ern.xsd")
	require.Len(t, issues, 1)
	assert.Equal(t, ddex.CodeSchemaValidation, issues[0].Code)
	assert.Contains(t, issues[0].Message, "engine crashed")
	assert.Equal(t, "using XSD: ern.xsd", issues[0].Context)
}

func TestIssues_ConformingIsEmpty(t *testing.T) {
	assert.Empty(t, Issues(Validated{}, "ern.xsd"))
}

func TestCriticalIssues(t *testing.T) {
	nf := NotFoundIssue("4.1", "schemas/ddex")
	assert.Equal(t, ddex.CodeSchemaNotFound, nf.Code)
	assert.Equal(t, "search path: schemas/ddex", nf.Context)
	assert.True(t, ddex.IsCritical(nf.Code))

	le := LoadErrorIssue("a.xsd", errors.New("bad"))
	assert.Equal(t, ddex.CodeSchemaLoadError, le.Code)
	assert.Equal(t, "XSD path: a.xsd", le.Context)
	assert.True(t, ddex.IsCritical(le.Code))
}
