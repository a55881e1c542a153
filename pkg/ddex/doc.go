// Package ddex is the public API of ddexcheck: the issue and result model,
// envelope metadata, run statistics, stable error codes and the Validator
// and Logger interfaces implemented by the internal packages.
//
// A Result is built once per validated document. Its Valid flag is true
// exactly when no ERROR issue was recorded; warnings and info are advisory.
package ddex
