package trace

import (
	"strconv"
	"sync"
	"time"
)

// heartbeat emits a liveness event every interval. Heartbeats without span
// ends point at a stuck document.
type heartbeat struct {
	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// startHeartbeat returns nil when t is off or every is not positive.
func startHeartbeat(t Tracer, every time.Duration) *heartbeat {
	if !t.Enabled() || every <= 0 {
		return nil
	}
	h := &heartbeat{stop: make(chan struct{})}
	h.wg.Go(func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for n := uint64(1); ; n++ {
			select {
			case <-h.stop:
				return
			case now := <-ticker.C:
				t.Emit(&Event{
					Time:   now,
					Seq:    nextSeq(),
					Kind:   KindHeartbeat,
					Scope:  ScopeDriver,
					Name:   "heartbeat",
					Detail: "#" + strconv.FormatUint(n, 10),
				})
			}
		}
	})
	return h
}

func (h *heartbeat) halt() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.wg.Wait()
}
