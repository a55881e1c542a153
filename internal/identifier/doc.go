// Package identifier validates the identifier and value formats used in
// DDEX messages: GRid, ISRC, ISAN, V-ISAN, ICPN (UPC/EAN), ISO 8601
// durations, dates and date-times, ISO 3166-1 territory codes and ISO 639
// language codes.
//
// Every format check is a pure function over a fixed regular expression.
// The plausibility helpers (ISRC year, ICPN check digit, duration bounds,
// future dates, registry lookups) are separate so callers decide which
// severity a failed plausibility check carries.
package identifier
