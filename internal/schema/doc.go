// Package schema is the XSD layer of ddexcheck.
//
// Structural conformance is delegated to an Engine. An engine compiles an
// XSD file into a Schema, and a Schema turns a document into an Outcome:
//
//   - Validated: the engine ran to completion; Violations may be empty.
//   - EngineFailure: the engine itself failed and says nothing about the
//     document.
//
// The two cases are distinct so that Chain can retry with a fallback engine
// only when the primary engine failed, never when it merely found problems.
//
// The package also owns schema discovery (Locator), the per-validator schema
// cache (Cache) and the conversion of outcomes into ddex.Issue values.
//
// # Engines
//
// The primary engine lives in the libxml sub-package and wraps libxml2 through
// cgo. NativeEngine is a pure Go XSD 1.0 fallback built on
// github.com/jacoelho/xsd, used when cgo is off or libxml2 fails.
package schema
