package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seq     atomic.Uint64
	spanIDs atomic.Uint64
)

func nextSeq() uint64 { return seq.Add(1) }

type ctxKey struct{}

// carrier is what a context holds: the tracer and the span that new spans
// nest under.
type carrier struct {
	tracer Tracer
	parent uint64
}

func carrierOf(ctx context.Context) carrier {
	if ctx != nil {
		if c, ok := ctx.Value(ctxKey{}).(carrier); ok {
			return c
		}
	}
	return carrier{tracer: Nop}
}

// WithTracer attaches t to ctx. Spans started from the result are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, carrier{tracer: t})
}

// Span is one begin/end pair. A span the level filtered out ignores every
// call.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

// Start opens a span under the one carried by ctx and returns a context
// carrying the new span. A filtered span leaves ctx unchanged, so its
// children attach to the nearest recorded ancestor.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	c := carrierOf(ctx)
	if !c.tracer.Enabled() || !c.tracer.Level().ShouldEmit(scope) {
		return ctx, &Span{}
	}
	s := &Span{
		tracer:  c.tracer,
		id:      spanIDs.Add(1),
		parent:  c.parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	ev := s.event(KindSpanBegin, "")
	ev.Time = s.started
	s.tracer.Emit(ev)
	return context.WithValue(ctx, ctxKey{}, carrier{tracer: c.tracer, parent: s.id}), s
}

func (s *Span) recording() bool { return s != nil && s.tracer != nil }

func (s *Span) event(kind Kind, detail string) *Event {
	return &Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
	}
}

// End emits the closing event with detail and any extras.
func (s *Span) End(detail string) {
	if !s.recording() {
		return
	}
	ev := s.event(KindSpanEnd, detail)
	ev.Extra = s.extra
	s.tracer.Emit(ev)
}

// WithExtra adds a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.recording() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// Mark records an instant event inside the span, e.g. a cache hit.
func (s *Span) Mark(name, detail string) {
	if !s.recording() {
		return
	}
	ev := s.event(KindMark, detail)
	ev.SpanID, ev.ParentID, ev.Name = 0, s.id, name
	s.tracer.Emit(ev)
}

// ID returns the span ID, 0 for a filtered span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
