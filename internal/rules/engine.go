package rules

import (
	"time"

	"github.com/beevik/etree"
	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// Category names, in evaluation order.
const (
	CategoryIdentifiers      = "identifiers"
	CategoryDurations        = "durations"
	CategoryDates            = "dates"
	CategoryTerritories      = "territories"
	CategoryLanguages        = "languages"
	CategoryRequiredElements = "required-elements"
	CategoryBusinessLogic    = "business-logic"
	CategoryTechnicalDetails = "technical-details"
)

// Options toggles the semantic plausibility checks that sit on top of the
// format checks. Format checks themselves are always on.
type Options struct {
	// Now is the clock used for year and future-date checks.
	Now func() time.Time

	ISRCYear       bool // SUSPICIOUS_ISRC_YEAR
	ICPNChecksum   bool // INVALID_ICPN_CHECKSUM
	DurationBounds bool // UNUSUALLY_LONG_DURATION / UNUSUALLY_SHORT_DURATION
	FutureDates    bool // FUTURE_DATE
	Registry       bool // UNKNOWN_TERRITORY / UNKNOWN_LANGUAGE
}

// DefaultOptions enables every plausibility check against the wall clock.
func DefaultOptions() Options {
	return Options{
		Now:            time.Now,
		ISRCYear:       true,
		ICPNChecksum:   true,
		DurationBounds: true,
		FutureDates:    true,
		Registry:       true,
	}
}

// Input is what every category receives.
type Input struct {
	Root        *etree.Element
	MessageType string
}

// Category is one named, independently evaluated group of checks.
type Category struct {
	Name  string
	Check func(Input) []ddex.Issue
}

// Engine binds the categories to a set of options.
type Engine struct {
	opts Options
}

// New creates an Engine. A nil clock falls back to time.Now.
func New(opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{opts: opts}
}

// Categories returns the categories in evaluation order.
func (e *Engine) Categories() []Category {
	return []Category{
		{Name: CategoryIdentifiers, Check: e.checkIdentifiers},
		{Name: CategoryDurations, Check: e.checkDurations},
		{Name: CategoryDates, Check: e.checkDates},
		{Name: CategoryTerritories, Check: e.checkTerritories},
		{Name: CategoryLanguages, Check: e.checkLanguages},
		{Name: CategoryRequiredElements, Check: checkRequiredElements},
		{Name: CategoryBusinessLogic, Check: checkBusinessLogic},
		{Name: CategoryTechnicalDetails, Check: checkTechnicalDetails},
	}
}

// Run evaluates every category in order and concatenates the issues.
// It does not isolate panics; callers that need per-category resilience
// iterate Categories themselves.
func (e *Engine) Run(in Input) []ddex.Issue {
	var issues []ddex.Issue
	for _, c := range e.Categories() {
		issues = append(issues, c.Check(in)...)
	}
	return issues
}

func issueAt(el *etree.Element, severity ddex.Severity, code, message, context, suggestion string) ddex.Issue {
	return ddex.Issue{
		Severity:    severity,
		Message:     message,
		ElementPath: xmltree.Path(el),
		Code:        code,
		Context:     context,
		Suggestion:  suggestion,
	}
}
