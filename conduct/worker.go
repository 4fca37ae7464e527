package conduct

import (
	"go.uber.org/atomic"
)

// Worker goroutine states as seen by the monitor.
const (
	workerPending int32 = iota // registered, waiting for the start gate
	workerRunning
	workerBeatWaiting
	workerDone
)

// worker is the conductor's bookkeeping record for one registered
// goroutine. All fields the monitor reads are atomics because the monitor
// samples them while the worker is live.
type worker struct {
	name string

	gid      *atomic.Int64 // goroutine id, recorded when the goroutine starts
	state    *atomic.Int32
	target   *atomic.Int64 // beat being awaited, meaningful while beat-waiting
	progress *atomic.Int64 // bumped on every observable transition
}

func newWorker(name string) *worker {
	return &worker{
		name:     name,
		gid:      atomic.NewInt64(0),
		state:    atomic.NewInt32(workerPending),
		target:   atomic.NewInt64(0),
		progress: atomic.NewInt64(0),
	}
}

func (w *worker) transition(state int32) {
	w.state.Store(state)
	w.progress.Inc()
}

// Handle identifies a registered worker.
type Handle struct {
	w *worker
}

// Name returns the worker's registered name.
func (h Handle) Name() string {
	return h.w.name
}

// Done reports whether the worker's body has returned.
func (h Handle) Done() bool {
	return h.w.state.Load() == workerDone
}
