package identifier

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/text/language"
)

// ErrNotDuration is returned by DurationSeconds for values that are not in
// PT form.
var ErrNotDuration = errors.New("not an ISO 8601 time duration")

var (
	hoursPart   = regexp.MustCompile(`([0-9]+)H`)
	minutesPart = regexp.MustCompile(`([0-9]+)M`)
	secondsPart = regexp.MustCompile(`([0-9.]+)S`)
)

// ICPNCheckDigit computes the expected check digit of a 12-digit UPC or
// 13-digit EAN. ok is false when s has another length or contains
// non-digits.
//
// UPC weights the even 0-based positions 0..10 by 3 and the odd ones by 1.
// EAN weights the even positions 0..11 by 1 and the odd ones by 3.
func ICPNCheckDigit(s string) (digit int, ok bool) {
	var payload int
	var evenWeight, oddWeight int
	switch len(s) {
	case 12:
		payload, evenWeight, oddWeight = 11, 3, 1
	case 13:
		payload, evenWeight, oddWeight = 12, 1, 3
	default:
		return 0, false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	total := 0
	for i := 0; i < payload; i++ {
		c := s[i]
		if i%2 == 0 {
			total += int(c-'0') * evenWeight
		} else {
			total += int(c-'0') * oddWeight
		}
	}
	return (10 - total%10) % 10, true
}

// ICPNChecksumValid reports whether the last digit of s matches its
// computed check digit.
func ICPNChecksumValid(s string) bool {
	want, ok := ICPNCheckDigit(s)
	if !ok {
		return false
	}
	return int(s[len(s)-1]-'0') == want
}

// DurationSeconds converts a PT duration to seconds. Hour and minute counts
// too large for an int still convert, to a very large number of seconds.
func DurationSeconds(s string) (float64, error) {
	if !ValidDuration(s) {
		return 0, fmt.Errorf("%q: %w", s, ErrNotDuration)
	}
	body := s[2:]

	var total float64
	if m := hoursPart.FindStringSubmatch(body); m != nil {
		h, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("hours in %q: %w", s, err)
		}
		total += h * 3600
	}
	if m := minutesPart.FindStringSubmatch(body); m != nil {
		mins, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("minutes in %q: %w", s, err)
		}
		total += mins * 60
	}
	if m := secondsPart.FindStringSubmatch(body); m != nil {
		sec, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("seconds in %q: %w", s, err)
		}
		total += sec
	}
	return total, nil
}

// ISRCYearSuspicious reports whether the two-digit year code of a valid
// ISRC points more than window years past the current two-digit year.
//
// The comparison is on the bare year code with no century windowing, so a
// code from a recording made a century ago cannot be told apart from a
// future one.
func ISRCYearSuspicious(isrc string, now time.Time, window int) bool {
	if len(isrc) < 7 {
		return false
	}
	year, err := strconv.Atoi(isrc[5:7])
	if err != nil {
		return false
	}
	return year > now.Year()%100+window
}

var dateLayouts = map[int]string{
	4:  "2006",
	7:  "2006-01",
	10: "2006-01-02",
}

// IsFutureDate reports whether a YYYY, YYYY-MM or YYYY-MM-DD value falls
// strictly after the calendar day of now. Partial dates resolve to their
// first day. Unparseable values are never in the future.
func IsFutureDate(s string, now time.Time) bool {
	layout, ok := dateLayouts[len(s)]
	if !ok {
		return false
	}
	d, err := time.Parse(layout, s)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.After(today)
}

// KnownTerritory reports whether a well-formed territory code names a
// registered ISO 3166-1 country. "Worldwide" is always known.
func KnownTerritory(code string) bool {
	if code == "Worldwide" {
		return true
	}
	r, err := language.ParseRegion(code)
	if err != nil {
		return false
	}
	return r.IsCountry()
}

// KnownLanguage reports whether a well-formed language code names a
// registered ISO 639 language and, when present, a registered region.
func KnownLanguage(code string) bool {
	base, region := code, ""
	if i := len(code) - 3; i > 0 && code[i] == '-' {
		base, region = code[:i], code[i+1:]
	}
	if _, err := language.ParseBase(base); err != nil {
		return false
	}
	if region != "" {
		return KnownTerritory(region)
	}
	return true
}
