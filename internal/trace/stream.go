package trace

import (
	"io"
	"sync"

	"github.com/cockroachdb/errors"
)

// StreamTracer writes each accepted event to w as it arrives.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

func newStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.accepts(ev) {
		return
	}
	data := encode(ev, t.format)
	t.mu.Lock()
	_, _ = t.w.Write(data) // best effort
	t.mu.Unlock()
}

// accepts filters by level. At LevelError only heartbeats reach the
// stream; everything else is kept for the ring.
func (t *StreamTracer) accepts(ev *Event) bool {
	if ev.Kind == KindHeartbeat {
		return true
	}
	return t.level != LevelError && t.level.ShouldEmit(ev.Scope)
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (t *StreamTracer) Close() error {
	err := t.Flush()
	if c, ok := t.w.(io.Closer); ok {
		err = errors.CombineErrors(err, c.Close())
	}
	return err
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
