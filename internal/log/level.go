//go:generate go run golang.org/x/tools/cmd/stringer -type=Level -linecomment=true

package log

import (
	"strings"
)

// Level parametrizes supported log verbosity levels.
type Level int

const (
	// Debug messages trace individual task invocations.
	Debug Level = iota // DEBUG
	// Info messages convey startup and configuration events.
	Info // INFO
	// Warn messages describe non-erroring divergences from the ideal code path.
	Warn // WARN
	// Error messages report failed tasks and misconfiguration.
	Error // ERROR
)

var knownLevels = []Level{Debug, Info, Warn, Error}

// ParseLevel looks up a Level constant by its stringified (case-insensitive) representation. Unknown
// levels resolve to Error.
func ParseLevel(level string) (Level, bool) {
	for _, knownLevel := range knownLevels {
		if strings.EqualFold(level, knownLevel.String()) {
			return knownLevel, true
		}
	}

	return Error, false
}

// Enables indicates whether the current log level enables logging at another level.
//
// For example,
//	Debug enables Debug, Info, Warn, and Error
//	Info enables Info, Warn, and Error, but not Debug
//	Error enables Error only
func (l Level) Enables(other Level) bool {
	return l <= other
}
