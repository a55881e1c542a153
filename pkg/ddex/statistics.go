package ddex

import (
	"sort"
	"time"
)

// Statistics accumulates counts over many validation results.
//
// Statistics is not safe for concurrent use. A batch run feeds it from the
// coordinating goroutine after workers have finished.
type Statistics struct {
	TotalFiles    int
	ValidFiles    int
	InvalidFiles  int
	TotalErrors   int
	TotalWarnings int
	ErrorCodes    map[string]int
	MessageTypes  map[string]int
	Versions      map[string]int

	started  time.Time
	finished time.Time
	now      func() time.Time
}

// NewStatistics creates an empty accumulator.
func NewStatistics() *Statistics {
	return &Statistics{
		ErrorCodes:   make(map[string]int),
		MessageTypes: make(map[string]int),
		Versions:     make(map[string]int),
		now:          time.Now,
	}
}

// Start records the beginning of the run.
func (s *Statistics) Start() { s.started = s.now() }

// Stop records the end of the run.
func (s *Statistics) Stop() { s.finished = s.now() }

// Add folds one result into the totals.
func (s *Statistics) Add(r Result) {
	s.TotalFiles++
	if r.Valid {
		s.ValidFiles++
	} else {
		s.InvalidFiles++
	}
	s.TotalErrors += len(r.Errors)
	s.TotalWarnings += len(r.Warnings)

	for _, issue := range r.Errors {
		if issue.Code != "" {
			s.ErrorCodes[issue.Code]++
		}
	}
	if r.MessageType != "" {
		s.MessageTypes[r.MessageType]++
	}
	if r.Version != "" {
		s.Versions[r.Version]++
	}
}

// Elapsed returns the time between Start and Stop, or zero when the run has
// not been both started and stopped.
func (s *Statistics) Elapsed() time.Duration {
	if s.started.IsZero() || s.finished.IsZero() {
		return 0
	}
	return s.finished.Sub(s.started)
}

// SuccessRate returns the percentage of valid files, 0 for an empty run.
func (s *Statistics) SuccessRate() float64 {
	if s.TotalFiles == 0 {
		return 0
	}
	return float64(s.ValidFiles) / float64(s.TotalFiles) * 100
}

// CodeCount is one bucket of the error-code histogram.
type CodeCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// StatisticsSummary is the renderer-friendly snapshot of Statistics.
type StatisticsSummary struct {
	TotalFiles    int            `json:"total_files"`
	ValidFiles    int            `json:"valid_files"`
	InvalidFiles  int            `json:"invalid_files"`
	SuccessRate   float64        `json:"success_rate"`
	TotalErrors   int            `json:"total_errors"`
	TotalWarnings int            `json:"total_warnings"`
	TotalTime     float64        `json:"total_time"`
	ErrorCodes    []CodeCount    `json:"error_codes"`
	MessageTypes  map[string]int `json:"message_types"`
	Versions      map[string]int `json:"ddex_versions"`
}

// Summary returns a snapshot with the error-code histogram sorted by
// descending count, ties broken by code.
func (s *Statistics) Summary() StatisticsSummary {
	codes := make([]CodeCount, 0, len(s.ErrorCodes))
	for code, n := range s.ErrorCodes {
		codes = append(codes, CodeCount{Code: code, Count: n})
	}
	sort.Slice(codes, func(i, j int) bool {
		if codes[i].Count != codes[j].Count {
			return codes[i].Count > codes[j].Count
		}
		return codes[i].Code < codes[j].Code
	})

	return StatisticsSummary{
		TotalFiles:    s.TotalFiles,
		ValidFiles:    s.ValidFiles,
		InvalidFiles:  s.InvalidFiles,
		SuccessRate:   float64(int(s.SuccessRate()*100+0.5)) / 100,
		TotalErrors:   s.TotalErrors,
		TotalWarnings: s.TotalWarnings,
		TotalTime:     s.Elapsed().Seconds(),
		ErrorCodes:    codes,
		MessageTypes:  s.MessageTypes,
		Versions:      s.Versions,
	}
}
