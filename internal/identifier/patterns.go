package identifier

import (
	"regexp"
	"strings"
)

var (
	gridPattern      = regexp.MustCompile(`^A1[A-Z0-9]{5}[A-Z0-9]{10}[A-Z0-9]$`)
	isrcPattern      = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{3}[0-9]{7}$`)
	isanPattern      = regexp.MustCompile(`^[A-F0-9]{12}$`)
	visanPattern     = regexp.MustCompile(`^[A-F0-9]{24}$`)
	icpnPattern      = regexp.MustCompile(`^[0-9]{12,13}$`)
	durationPattern  = regexp.MustCompile(`^PT(([0-9]+H)?([0-9]+M)?([0-9]+(\.[0-9]+)?S)?)$`)
	datePattern      = regexp.MustCompile(`^[0-9]{4}(-[0-9]{2}(-[0-9]{2})?)?$`)
	dateTimePattern  = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?(Z|[+-][0-9]{2}:[0-9]{2})$`)
	territoryPattern = regexp.MustCompile(`^[A-Z]{2}$|^Worldwide$`)
	languagePattern  = regexp.MustCompile(`^[a-z]{2,3}(-[A-Z]{2})?$`)
)

// ValidGRid reports whether s is a Global Release Identifier.
func ValidGRid(s string) bool { return gridPattern.MatchString(s) }

// ValidISRC reports whether s is an International Standard Recording Code
// written without separators.
func ValidISRC(s string) bool { return isrcPattern.MatchString(s) }

// ValidISAN reports whether s is a 12-hex-digit ISAN root. Hyphens are ignored.
func ValidISAN(s string) bool { return isanPattern.MatchString(StripHyphens(s)) }

// ValidVISAN reports whether s is a 24-hex-digit versioned ISAN. Hyphens are ignored.
func ValidVISAN(s string) bool { return visanPattern.MatchString(StripHyphens(s)) }

// ValidICPN reports whether s is a 12-digit UPC or 13-digit EAN.
func ValidICPN(s string) bool { return icpnPattern.MatchString(s) }

// ValidDuration reports whether s is an ISO 8601 time duration of the form
// PT[nH][nM][n[.n]S].
func ValidDuration(s string) bool { return durationPattern.MatchString(s) }

// ValidDate reports whether s is YYYY, YYYY-MM or YYYY-MM-DD.
func ValidDate(s string) bool { return datePattern.MatchString(s) }

// ValidDateTime reports whether s is a full ISO 8601 date-time with a Z or
// numeric offset.
func ValidDateTime(s string) bool { return dateTimePattern.MatchString(s) }

// ValidTerritory reports whether s is an ISO 3166-1 alpha-2 code or the
// literal "Worldwide".
func ValidTerritory(s string) bool { return territoryPattern.MatchString(s) }

// ValidLanguage reports whether s is an ISO 639-1/639-2 code optionally
// followed by a region subtag.
func ValidLanguage(s string) bool { return languagePattern.MatchString(s) }

// StripHyphens removes the display hyphens used when writing ISAN values.
func StripHyphens(s string) string { return strings.ReplaceAll(s, "-", "") }
