package trace

import "github.com/cockroachdb/errors"

// fanout sends every event to each tracer. ModeBoth pairs a stream with a
// ring this way.
type fanout struct {
	level   Level
	tracers []Tracer
}

func (t *fanout) Emit(ev *Event) {
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *fanout) Flush() error {
	var err error
	for _, tr := range t.tracers {
		err = errors.CombineErrors(err, tr.Flush())
	}
	return err
}

func (t *fanout) Close() error {
	var err error
	for _, tr := range t.tracers {
		err = errors.CombineErrors(err, tr.Close())
	}
	return err
}

func (t *fanout) Level() Level  { return t.level }
func (t *fanout) Enabled() bool { return t.level > LevelOff }
