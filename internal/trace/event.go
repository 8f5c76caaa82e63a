package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindMark is an instant event inside a span.
	KindMark
	KindHeartbeat // periodic liveness signal
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindMark:
		return "mark"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	// ScopeDriver covers a whole CLI command.
	ScopeDriver Scope = iota + 1
	// ScopePhase covers driver phases: config, load, generate, write.
	ScopePhase
	// ScopeDocument covers one declaration document.
	ScopeDocument
	ScopeType // one emitted type, the finest scope
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePhase:
		return "phase"
	case ScopeDocument:
		return "document"
	case ScopeType:
		return "type"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	Name     string            // e.g. "load", "generate", "doc:Foo.toml"
	Detail   string            // optional detail message
	Extra    map[string]string // extensible key-value pairs
}
