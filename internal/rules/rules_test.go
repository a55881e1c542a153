package rules

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return fixedNow }
	return New(opts)
}

func input(t *testing.T, xml string) Input {
	t.Helper()
	doc, err := xmltree.ParseString(xml)
	require.NoError(t, err)
	return Input{Root: doc.Root(), MessageType: xmltree.LocalName(doc.Root())}
}

func wrap(body string) string {
	return "<NewReleaseMessage>" + body + "</NewReleaseMessage>"
}

func codes(issues []ddex.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}

func TestCategories_Order(t *testing.T) {
	var names []string
	for _, c := range testEngine().Categories() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		CategoryIdentifiers, CategoryDurations, CategoryDates, CategoryTerritories,
		CategoryLanguages, CategoryRequiredElements, CategoryBusinessLogic, CategoryTechnicalDetails,
	}, names)
}

func TestCheckIdentifiers(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{"valid ISRC", "<ISRC>GBAYE0601498</ISRC>", nil},
		{"invalid ISRC", "<ISRC>US-RC1-76-07839</ISRC>", []string{ddex.CodeInvalidISRC}},
		{"empty ISRC", "<ISRC></ISRC>", []string{ddex.CodeEmptyISRC}},
		{"whitespace ISRC", "<ISRC>   </ISRC>", []string{ddex.CodeEmptyISRC}},
		{"suspicious ISRC year", "<ISRC>USRC19907839</ISRC>", []string{ddex.CodeSuspiciousISRCYear}},
		{"valid GRid", "<GRid>A12425GABC1234002M</GRid>", nil},
		{"invalid GRid", "<GRid>B12425GABC1234002M</GRid>", []string{ddex.CodeInvalidGRid}},
		{"empty GRid", "<GRid/>", []string{ddex.CodeEmptyGRid}},
		{"hyphenated ISAN", "<ISAN>0000-3BAB-9352</ISAN>", nil},
		{"invalid ISAN", "<ISAN>0000-3BAB-93</ISAN>", []string{ddex.CodeInvalidISAN}},
		{"empty ISAN", "<ISAN/>", []string{ddex.CodeEmptyISAN}},
		{"valid VISAN", "<VISAN>0000-0000-3A8D-0000-0000-0000</VISAN>", nil},
		{"invalid VISAN", "<VISAN>0000-0000-3A8D</VISAN>", []string{ddex.CodeInvalidVISAN}},
		{"empty VISAN", "<VISAN> </VISAN>", []string{ddex.CodeEmptyVISAN}},
		{"valid UPC", "<ICPN>036000291452</ICPN>", nil},
		{"valid EAN", "<ICPN>4006381333931</ICPN>", nil},
		{"bad ICPN check digit", "<ICPN>036000291453</ICPN>", []string{ddex.CodeInvalidICPNChecksum}},
		{"invalid ICPN", "<ICPN>12345</ICPN>", []string{ddex.CodeInvalidICPN}},
		{"empty ICPN", "<ICPN></ICPN>", []string{ddex.CodeEmptyICPN}},
	}

	e := testEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := e.checkIdentifiers(input(t, wrap(tt.body)))
			if tt.expected == nil {
				assert.Empty(t, issues)
				return
			}
			assert.Equal(t, tt.expected, codes(issues))
		})
	}
}

func TestCheckIdentifiers_SeveritiesAndLocation(t *testing.T) {
	in := input(t, wrap("<ResourceList><SoundRecording><ISRC>bad</ISRC></SoundRecording><SoundRecording><ICPN>036000291453</ICPN></SoundRecording></ResourceList>"))
	issues := testEngine().checkIdentifiers(in)
	require.Len(t, issues, 2)

	assert.Equal(t, ddex.SeverityError, issues[0].Severity)
	assert.Equal(t, "/NewReleaseMessage/ResourceList/SoundRecording[1]/ISRC", issues[0].ElementPath)
	assert.Equal(t, "ISRC value: 'bad'", issues[0].Context)
	assert.NotEmpty(t, issues[0].Suggestion)

	assert.Equal(t, ddex.SeverityWarning, issues[1].Severity)
	assert.Equal(t, ddex.CodeInvalidICPNChecksum, issues[1].Code)
}

func TestCheckIdentifiers_EmptyNeverAlsoInvalid(t *testing.T) {
	in := input(t, wrap("<GRid/><ISRC/><ISAN/><VISAN/><ICPN/>"))
	for _, issue := range testEngine().checkIdentifiers(in) {
		assert.True(t, strings.HasPrefix(issue.Code, "EMPTY_"), issue.Code)
	}
}

func TestCheckIdentifiers_PlausibilityToggles(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return fixedNow }
	opts.ISRCYear = false
	opts.ICPNChecksum = false

	in := input(t, wrap("<ISRC>USRC19907839</ISRC><ICPN>036000291453</ICPN>"))
	assert.Empty(t, New(opts).checkIdentifiers(in))
}

func TestCheckDurations(t *testing.T) {
	tests := []struct {
		value    string
		expected []string
	}{
		{"PT3M45S", nil},
		{"PT1H", nil},
		{"PT2H", nil},
		{"PT2H0M1S", []string{ddex.CodeUnusuallyLongDuration}},
		{"PT99999999999999999999H", []string{ddex.CodeUnusuallyLongDuration}},
		{"PT99999999999999999999M", []string{ddex.CodeUnusuallyLongDuration}},
		{"PT0.5S", []string{ddex.CodeUnusuallyShortDuration}},
		{"PT", []string{ddex.CodeUnusuallyShortDuration}},
		{"3:45", []string{ddex.CodeInvalidDuration}},
		{"P1D", []string{ddex.CodeInvalidDuration}},
	}

	e := testEngine()
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			issues := e.checkDurations(input(t, wrap("<Duration>"+tt.value+"</Duration>")))
			if tt.expected == nil {
				assert.Empty(t, issues)
				return
			}
			assert.Equal(t, tt.expected, codes(issues))
		})
	}
}

func TestCheckDurations_EmptySkipped(t *testing.T) {
	assert.Empty(t, testEngine().checkDurations(input(t, wrap("<Duration/>"))))
}

func TestCheckDates(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{"valid release date", "<ReleaseDate>2024-01-15</ReleaseDate>", nil},
		{"partial dates", "<StartDate>2024</StartDate><EndDate>2024-02</EndDate>", nil},
		{"invalid date", "<ReleaseDate>15/01/2024</ReleaseDate>", []string{ddex.CodeInvalidDate}},
		{"future creation date", "<CreationDate>2030-01-01</CreationDate>", []string{ddex.CodeFutureDate}},
		{"future original release date", "<OriginalReleaseDate>2025</OriginalReleaseDate>", []string{ddex.CodeFutureDate}},
		{"future release date allowed", "<ReleaseDate>2030-01-01</ReleaseDate>", nil},
		{"today is not future", "<CreationDate>2024-06-15</CreationDate>", nil},
		{"valid datetime", "<MessageCreatedDateTime>2024-01-15T10:30:00Z</MessageCreatedDateTime>", nil},
		{"offset datetime", "<MessageCreatedDateTime>2024-01-15T10:30:00.123+02:00</MessageCreatedDateTime>", nil},
		{"invalid datetime", "<MessageCreatedDateTime>2024-01-15 10:30</MessageCreatedDateTime>", []string{ddex.CodeInvalidDateTime}},
	}

	e := testEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := e.checkDates(input(t, wrap(tt.body)))
			if tt.expected == nil {
				assert.Empty(t, issues)
				return
			}
			assert.Equal(t, tt.expected, codes(issues))
		})
	}
}

func TestCheckTerritories(t *testing.T) {
	tests := []struct {
		body     string
		expected []string
	}{
		{"<Territory>US</Territory>", nil},
		{"<TerritoryCode>Worldwide</TerritoryCode>", nil},
		{"<Territory>usa</Territory>", []string{ddex.CodeInvalidTerritory}},
		{"<TerritoryCode>JJ</TerritoryCode>", []string{ddex.CodeUnknownTerritory}},
	}

	e := testEngine()
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			issues := e.checkTerritories(input(t, wrap(tt.body)))
			if tt.expected == nil {
				assert.Empty(t, issues)
				return
			}
			require.Equal(t, tt.expected, codes(issues))
			assert.Equal(t, ddex.SeverityWarning, issues[0].Severity)
		})
	}
}

func TestCheckLanguages(t *testing.T) {
	tests := []struct {
		body     string
		expected []string
	}{
		{"<LanguageOfPerformance>en</LanguageOfPerformance>", nil},
		{"<LanguageOfDubbing>zh-TW</LanguageOfDubbing>", nil},
		{"<LanguageOfSubtitles>ENG</LanguageOfSubtitles>", []string{ddex.CodeInvalidLanguage}},
		{"<LanguageOfPerformance>en_US</LanguageOfPerformance>", []string{ddex.CodeInvalidLanguage}},
	}

	e := testEngine()
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			issues := e.checkLanguages(input(t, wrap(tt.body)))
			if tt.expected == nil {
				assert.Empty(t, issues)
				return
			}
			require.Equal(t, tt.expected, codes(issues))
			assert.Equal(t, ddex.SeverityWarning, issues[0].Severity)
		})
	}
}

func TestCheckLanguages_RegistryToggle(t *testing.T) {
	opts := DefaultOptions()
	opts.Registry = false
	in := input(t, wrap("<LanguageOfPerformance>en-ZZ</LanguageOfPerformance><Territory>ZZ</Territory>"))
	e := New(opts)
	assert.Empty(t, e.checkLanguages(in))
	assert.Empty(t, e.checkTerritories(in))
}

const completeHeader = `<MessageHeader>
  <MessageThreadId>T1</MessageThreadId>
  <MessageId>M1</MessageId>
  <MessageSender><PartyId>P1</PartyId></MessageSender>
  <MessageRecipient><PartyId>P2</PartyId></MessageRecipient>
  <MessageCreatedDateTime>2024-01-15T10:30:00Z</MessageCreatedDateTime>
</MessageHeader>`

func TestCheckRequiredElements(t *testing.T) {
	tests := []struct {
		name     string
		xml      string
		expected []string
	}{
		{
			name: "complete new release",
			xml:  wrap(completeHeader + "<ReleaseList/><ResourceList/>"),
		},
		{
			name:     "new release without header",
			xml:      wrap("<ReleaseList/><ResourceList/>"),
			expected: []string{ddex.CodeMissingMessageHeader},
		},
		{
			name:     "new release without lists",
			xml:      wrap(completeHeader),
			expected: []string{ddex.CodeMissingReleaseList, ddex.CodeMissingResourceList},
		},
		{
			name:     "catalog list without header",
			xml:      "<CatalogListMessage/>",
			expected: []string{ddex.CodeMissingMessageHeader},
		},
		{
			name: "unknown message type",
			xml:  "<PurgeReleaseMessage/>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := checkRequiredElements(input(t, tt.xml))
			if tt.expected == nil {
				assert.Empty(t, issues)
				return
			}
			assert.Equal(t, tt.expected, codes(issues))
		})
	}
}

func TestCheckRequiredElements_MissingHeaderChild(t *testing.T) {
	header := strings.Replace(completeHeader, "<MessageId>M1</MessageId>", "", 1)
	issues := checkRequiredElements(input(t, wrap(header+"<ReleaseList/><ResourceList/>")))
	require.Len(t, issues, 1)
	assert.Equal(t, ddex.CodeMissingHeaderElement, issues[0].Code)
	assert.Equal(t, ddex.SeverityError, issues[0].Severity)
	assert.Equal(t, "MessageHeader", issues[0].ElementPath)
	assert.Equal(t, "missing element: MessageId", issues[0].Context)
}

func TestCheckRequiredElements_ResourceListIsWarning(t *testing.T) {
	issues := checkRequiredElements(input(t, wrap(completeHeader+"<ReleaseList/>")))
	require.Len(t, issues, 1)
	assert.Equal(t, ddex.SeverityWarning, issues[0].Severity)
}

func TestCheckBusinessLogic(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name: "release with resource reference",
			body: `<ResourceList><SoundRecording ResourceReference="A1"><Duration>PT3M</Duration></SoundRecording></ResourceList>
<ReleaseList><Release><ReleaseResourceReferenceList><ReleaseResourceReference>A1</ReleaseResourceReference></ReleaseResourceReferenceList></Release></ReleaseList>`,
		},
		{
			name:     "release without resources",
			body:     "<ReleaseList><Release><Title>x</Title></Release></ReleaseList>",
			expected: []string{ddex.CodeMissingResources},
		},
		{
			name:     "sound recording without duration",
			body:     "<ResourceList><SoundRecording><ISRC>GBAYE0601498</ISRC></SoundRecording></ResourceList>",
			expected: []string{ddex.CodeMissingDuration},
		},
		{
			name:     "deal without use type and territory",
			body:     "<DealList><ReleaseDeal><Deal><DealTerms/></Deal></ReleaseDeal></DealList>",
			expected: []string{ddex.CodeMissingUseType, ddex.CodeMissingTerritory},
		},
		{
			name: "complete deal",
			body: "<DealList><Deal><DealTerms><Usage><UseType>Stream</UseType></Usage><TerritoryCode>US</TerritoryCode></DealTerms></Deal></DealList>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := checkBusinessLogic(input(t, wrap(tt.body)))
			if tt.expected == nil {
				assert.Empty(t, issues)
				return
			}
			assert.Equal(t, tt.expected, codes(issues))
		})
	}
}

func TestCheckResourceReferences(t *testing.T) {
	body := `<ResourceList>
  <SoundRecording ResourceReference="A1"/>
  <SoundRecording ResourceReference="A2"/>
</ResourceList>
<ReleaseList><Release>
  <ReleaseResourceReference>A1</ReleaseResourceReference>
  <ReleaseResourceReference>A3</ReleaseResourceReference>
</Release></ReleaseList>`

	issues := checkResourceReferences(input(t, wrap(body)))
	require.Len(t, issues, 2)

	assert.Equal(t, ddex.CodeUndefinedResourceRef, issues[0].Code)
	assert.Equal(t, ddex.SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "A3")

	assert.Equal(t, ddex.CodeUnusedResource, issues[1].Code)
	assert.Equal(t, ddex.SeverityWarning, issues[1].Severity)
	assert.Contains(t, issues[1].Message, "A2")
}

func TestCheckResourceReferences_SortedEmission(t *testing.T) {
	body := "<ReleaseResourceReference>Z9</ReleaseResourceReference>" +
		"<ReleaseResourceReference>B2</ReleaseResourceReference>" +
		"<ResourceReference>M5</ResourceReference>"
	issues := checkResourceReferences(input(t, wrap(body)))
	require.Len(t, issues, 3)
	assert.Equal(t, "resource reference: B2", issues[0].Context)
	assert.Equal(t, "resource reference: M5", issues[1].Context)
	assert.Equal(t, "resource reference: Z9", issues[2].Context)
}

func TestCheckDuplicateIdentifiers(t *testing.T) {
	body := `<ResourceList>
  <SoundRecording><ISRC>GBAYE0601498</ISRC></SoundRecording>
  <SoundRecording><ISRC>GBAYE0601498</ISRC></SoundRecording>
  <SoundRecording><ISRC>GBAYE0601498</ISRC></SoundRecording>
</ResourceList>
<ReleaseList>
  <Release><GRid>A12425GABC1234002M</GRid></Release>
  <Release><GRid>A12425GABC1234002M</GRid></Release>
</ReleaseList>`

	issues := checkDuplicateIdentifiers(input(t, wrap(body)))
	assert.Equal(t, []string{ddex.CodeDuplicateISRC, ddex.CodeDuplicateISRC, ddex.CodeDuplicateGRid}, codes(issues))
	assert.Equal(t, "/NewReleaseMessage/ResourceList/SoundRecording[2]/ISRC", issues[0].ElementPath)
	assert.Equal(t, "/NewReleaseMessage/ResourceList/SoundRecording[3]/ISRC", issues[1].ElementPath)
	assert.Equal(t, "/NewReleaseMessage/ReleaseList/Release[2]/GRid", issues[2].ElementPath)
}

func TestCheckDuplicateIdentifiers_KMinusOne(t *testing.T) {
	for k := 1; k <= 5; k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			body := strings.Repeat("<ISRC>GBAYE0601498</ISRC>", k)
			assert.Len(t, checkDuplicateIdentifiers(input(t, wrap(body))), k-1)
		})
	}
}

func TestCheckTechnicalDetails(t *testing.T) {
	tests := []struct {
		value    string
		expected []string
	}{
		{"320", nil},
		{"64", nil},
		{"128.5", nil},
		{"32", []string{ddex.CodeUnusualBitRate}},
		{"1411", []string{ddex.CodeUnusualBitRate}},
		{"fast", []string{ddex.CodeInvalidBitRate}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			body := "<TechnicalSoundRecordingDetails><BitRate>" + tt.value + "</BitRate></TechnicalSoundRecordingDetails>"
			issues := checkTechnicalDetails(input(t, wrap(body)))
			if tt.expected == nil {
				assert.Empty(t, issues)
				return
			}
			assert.Equal(t, tt.expected, codes(issues))
		})
	}
}

func TestCheckTechnicalDetails_NestedDetailsReportOnce(t *testing.T) {
	body := "<TechnicalSoundRecordingDetails><TechnicalSoundRecordingDetails>" +
		"<BitRate>fast</BitRate>" +
		"</TechnicalSoundRecordingDetails></TechnicalSoundRecordingDetails>"
	issues := checkTechnicalDetails(input(t, wrap(body)))
	assert.Equal(t, []string{ddex.CodeInvalidBitRate}, codes(issues))
}

func TestCheckTechnicalDetails_OnlyUnderTechnicalDetails(t *testing.T) {
	assert.Empty(t, checkTechnicalDetails(input(t, wrap("<BitRate>fast</BitRate>"))))
}

func TestRun_ConcatenatesInCategoryOrder(t *testing.T) {
	in := input(t, wrap("<ISRC>bad</ISRC><Duration>3:45</Duration>"))
	issues := testEngine().Run(in)
	got := codes(issues)
	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, ddex.CodeInvalidISRC, got[0])
	assert.Equal(t, ddex.CodeInvalidDuration, got[1])
}

func TestChecks_DoNotMutateTree(t *testing.T) {
	doc, err := xmltree.ParseString(wrap("<ISRC>GBAYE0601498</ISRC><ISRC>GBAYE0601498</ISRC>"))
	require.NoError(t, err)
	in := Input{Root: doc.Root(), MessageType: "NewReleaseMessage"}

	first := testEngine().Run(in)
	second := testEngine().Run(in)
	assert.Equal(t, first, second)
}
