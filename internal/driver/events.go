package driver

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	StageLoad     Stage = "load"
	StageGenerate Stage = "generate"
	StageWrite    Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a document (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; workers report independently.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
