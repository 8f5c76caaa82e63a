package trace

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff    Level = iota // no tracing
	LevelError               // only dumped on failure
	LevelPhase               // driver + phase boundaries
	LevelDetail              // per-document events
	LevelDebug               // everything including per-type spans
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "phase":
		return LevelPhase, nil
	case "detail":
		return LevelDetail, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, errors.Newf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelError:
		// ring buffer only; dumped when a run fails
		return scope <= ScopePhase
	case LevelPhase:
		return scope <= ScopePhase
	case LevelDetail:
		return scope <= ScopeDocument
	case LevelDebug:
		return true
	}
	return false
}
