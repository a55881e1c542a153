// Package logging provides concrete implementations of the ddex.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Human-readable lines on stderr (or any io.Writer)
//   - ZapLogger: ECS-formatted JSON lines through zap, for --log-format json
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging

import "github.com/vvka-141/ddexcheck/pkg/ddex"

var (
	_ ddex.Logger = (*ConsoleLogger)(nil)
	_ ddex.Logger = (*ZapLogger)(nil)
	_ ddex.Logger = (*NullLogger)(nil)
)

// New returns the logger for a log format: "json" selects ZapLogger on
// stderr, anything else ConsoleLogger.
func New(format string, verbose bool) ddex.Logger {
	if format == FormatJSON {
		return NewZapLogger(nil, verbose)
	}
	return NewConsoleLogger(verbose)
}

// Log formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)
