// Package rules implements the DDEX business-rule categories.
//
// Each category is an independent, pure check over a parsed tree. It
// returns zero or more issues and never mutates the tree. Categories are
// evaluated in a fixed order (see Engine.Categories) so that output is
// reproducible; the caller owns failure isolation between them.
//
// Element lookup is namespace-agnostic: DDEX documents commonly declare
// the ERN namespace on the root only and leave child elements unqualified,
// so every check matches on local names.
package rules
