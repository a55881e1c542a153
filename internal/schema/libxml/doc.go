// Package libxml provides the primary schema engine, a thin wrapper around
// libxml2's XSD validator.
//
// The engine needs cgo. Binaries built with CGO_ENABLED=0 get a stub whose
// Load returns schema.ErrEngineUnavailable, which makes schema.Chain use its
// fallback engine instead.
package libxml
