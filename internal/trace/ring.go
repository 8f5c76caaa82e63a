package trace

import (
	"fmt"
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory (circular buffer).
type RingTracer struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
	total    uint64
	level    Level
}

func newRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{
		events:   make([]Event, capacity),
		capacity: capacity,
		level:    level,
	}
}

// Emit adds an event to the ring buffer.
func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.events[t.head] = *ev
	t.total++
	t.head = (t.head + 1) % t.capacity
	if t.head == 0 {
		t.full = true
	}
}

// snapshot copies the stored events in chronological order.
func (t *RingTracer) snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.full {
		result := make([]Event, t.head)
		copy(result, t.events[:t.head])
		return result
	}

	// Wrapped - return [head:capacity] + [0:head]
	result := make([]Event, t.capacity)
	copy(result, t.events[t.head:])
	copy(result[t.capacity-t.head:], t.events[:t.head])
	return result
}

// Overwritten reports how many events fell out of the buffer.
func (t *RingTracer) Overwritten() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.full {
		return 0
	}
	return t.total - uint64(t.capacity)
}

// Dump writes the newest events to w, at most limit of them (0 means all).
// Older events are summarized in a single leading line.
func (t *RingTracer) Dump(w io.Writer, format Format, limit int) error {
	events := t.snapshot()
	skipped := t.Overwritten()
	if limit > 0 && len(events) > limit {
		skipped += uint64(len(events) - limit)
		events = events[len(events)-limit:]
	}
	if skipped > 0 && format == FormatText {
		if _, err := fmt.Fprintf(w, "... %d earlier events not shown\n", skipped); err != nil {
			return err
		}
	}
	for i := range events {
		if _, err := w.Write(encode(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op for RingTracer since everything is in memory.
func (t *RingTracer) Flush() error { return nil }

// Close is a no-op for RingTracer.
func (t *RingTracer) Close() error { return nil }

// Level returns the current tracing level.
func (t *RingTracer) Level() Level { return t.level }

// Enabled returns true if tracing is active.
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
