// Package metadata detects the envelope of a DDEX message.
//
// # Overview
//
// Every DDEX message carries a small amount of self-describing metadata on
// its root element. This package reads it without consulting a schema:
//   - Message type (the local name of the root element)
//   - DDEX version (from the ERN namespace URI, else MessageSchemaVersionId)
//   - Profile versions (BusinessProfileVersionId, ReleaseProfileVersionId)
//   - Language (xml:lang) and default namespace
//
// # Version Detection
//
// Namespace declarations on the root are scanned in document order. The
// first URI containing "ddex.net/xml/ern" and a known version marker wins:
//
//	http://ddex.net/xml/ern/382  →  3.8.2
//	http://ddex.net/xml/ern/41   →  4.1
//
// When no namespace matches, the raw MessageSchemaVersionId attribute is
// used as-is (for example "ern/382").
//
// # Usage
//
// Best-effort detection over an already parsed tree:
//
//	msg := metadata.Inspect(doc.Root())
//
// Strict extraction from raw content, failing when the envelope is
// incomplete:
//
//	msg, err := metadata.Extract(content, filePath)
//	var envErr *metadata.EnvelopeError
//	if errors.As(err, &envErr) {
//	    fmt.Println(envErr.Hint)
//	}
//
// # Document Identity
//
// DocumentID derives a deterministic UUID v5 from a normalized file path so
// that repeated validation runs over the same file can be correlated in the
// result store.
package metadata
