package metadata

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// ERNNamespaceMarker identifies an Electronic Release Notification namespace URI.
const ERNNamespaceMarker = "ddex.net/xml/ern"

// versionMarkers map a substring of the ERN namespace URI to a DDEX
// version. Order matters: the first match wins.
var versionMarkers = []struct {
	marker  string
	version string
}{
	{"382", "3.8.2"},
	{"41", "4.1"},
	{"42", "4.2"},
	{"43", "4.3"},
}

// Namespaces returns the namespace declarations of el in attribute order.
func Namespaces(el *etree.Element) []Namespace {
	var out []Namespace
	for _, a := range el.Attr {
		switch {
		case a.Space == "xmlns":
			out = append(out, Namespace{Prefix: a.Key, URI: a.Value})
		case a.Space == "" && a.Key == "xmlns":
			out = append(out, Namespace{URI: a.Value})
		}
	}
	return out
}

// DetectVersion returns the DDEX version of the message rooted at root, or
// "" when it cannot be determined.
func DetectVersion(root *etree.Element) string {
	for _, ns := range Namespaces(root) {
		if !strings.Contains(ns.URI, ERNNamespaceMarker) {
			continue
		}
		for _, vm := range versionMarkers {
			if strings.Contains(ns.URI, vm.marker) {
				return vm.version
			}
		}
	}
	v, _ := xmltree.Attr(root, "MessageSchemaVersionId")
	return v
}

// DetectMessageType returns the local name of root.
func DetectMessageType(root *etree.Element) string {
	if root == nil {
		return ""
	}
	return xmltree.LocalName(root)
}

// Inspect reads the envelope of root. Fields that are absent are left empty.
func Inspect(root *etree.Element) ddex.Message {
	if root == nil {
		return ddex.Message{}
	}

	msg := ddex.Message{
		Type:    DetectMessageType(root),
		Version: DetectVersion(root),
	}
	for _, a := range root.Attr {
		switch {
		case a.Space == "xml" && a.Key == "lang":
			msg.Language = a.Value
		case a.Space != "" || a.Key == "xmlns":
		case a.Key == "MessageSchemaVersionId":
			msg.SchemaVersionID = a.Value
		case a.Key == "BusinessProfileVersionId":
			msg.BusinessProfileVersionID = a.Value
		case a.Key == "ReleaseProfileVersionId":
			msg.ReleaseProfileVersionID = a.Value
		}
	}
	for _, ns := range Namespaces(root) {
		if ns.Prefix == "" {
			msg.Namespace = ns.URI
			break
		}
	}
	return msg
}

// Extract parses content and returns its envelope.
//
// Error cases:
//   - Malformed XML → EnvelopeError with the parser's line number
//   - Missing message type or version → EnvelopeError naming the field
func Extract(content []byte, filePath string) (ddex.Message, error) {
	doc, err := xmltree.Parse(content)
	if err != nil {
		return ddex.Message{}, wrapParseError(err, filePath)
	}

	msg := Inspect(doc.Root())
	if msg.Version == "" {
		return msg, &EnvelopeError{
			FilePath: filePath,
			Field:    "version",
			Message:  "DDEX version could not be detected",
			Hint: "Declare the ERN namespace on the root element, for example\n" +
				"  xmlns:ern=\"http://ddex.net/xml/ern/382\"\n" +
				"or set the MessageSchemaVersionId attribute.",
		}
	}
	return msg, nil
}
