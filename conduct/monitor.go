package conduct

import (
	"log/slog"
	"time"

	"github.com/amp-labs/amp-patience/timespan"
)

// deadlockThreshold is how many consecutive checks may observe the group
// fully blocked (nobody runnable, nobody awaiting a future beat) before the
// monitor declares a suspected deadlock.
const deadlockThreshold = 50

// monitor watches the conducted workers from its own goroutine. Each tick
// it classifies every unfinished worker as runnable, beat-waiting, or
// blocked, then decides whether to advance the clock, keep waiting, or kill
// the run.
type monitor struct {
	conductor *Conductor
	patience  timespan.Patience
	log       *slog.Logger

	stopCh chan struct{}

	stuckChecks  int
	lastProgress time.Time
	lastCounters int64
}

func newMonitor(conductor *Conductor, patience timespan.Patience, log *slog.Logger) *monitor {
	return &monitor{
		conductor: conductor,
		patience:  patience,
		log:       log,
		stopCh:    make(chan struct{}),
	}
}

func (m *monitor) stop() {
	close(m.stopCh)
}

func (m *monitor) run() {
	ticker := time.NewTicker(m.patience.Interval.Duration())
	defer ticker.Stop()

	m.lastProgress = time.Now()

	for {
		select {
		case <-m.stopCh:
			return
		case <-m.conductor.fatal:
			return
		case <-ticker.C:
			if m.check() {
				return
			}
		}
	}
}

// check performs one monitoring pass. It returns true once monitoring
// should stop, either because all workers finished or because the run was
// declared dead.
func (m *monitor) check() bool {
	workers := m.conductor.snapshotWorkers()

	// Progress counters move whenever any worker changes state; every
	// observed movement resets the timeout window.
	var counters int64

	for _, w := range workers {
		counters += w.progress.Load()
	}

	if counters != m.lastCounters {
		m.lastCounters = counters
		m.lastProgress = time.Now()
	}

	currentBeat := m.conductor.clock.beat()
	states := goroutineStates()

	allDone := true
	anyBeatWaiting := false

	var runnable []string

	for _, w := range workers {
		switch w.state.Load() {
		case workerDone:
			continue
		case workerBeatWaiting:
			allDone = false

			if w.target.Load() > currentBeat {
				anyBeatWaiting = true
			} else {
				// Woken by the last advancement but not yet rescheduled;
				// logically awake, so the clock must wait for it.
				runnable = append(runnable, w.name)
			}

			continue
		default:
			allDone = false
		}

		// Pending workers have not recorded a goroutine id yet; treat
		// them as runnable, they are about to start.
		if state, ok := states[w.gid.Load()]; !ok || isRunnableState(state) {
			runnable = append(runnable, w.name)
		}
	}

	if allDone {
		return true
	}

	switch {
	case len(runnable) > 0:
		m.stuckChecks = 0

		if time.Since(m.lastProgress) > m.patience.Timeout.Duration() {
			timeoutsDetected.Inc()
			m.fatal(&TimeoutError{Timeout: m.patience.Timeout, Workers: runnable})

			return true
		}
	case anyBeatWaiting:
		m.stuckChecks = 0
		m.lastProgress = time.Now()

		beat := m.conductor.clock.advance()
		beatsAdvanced.Inc()
		m.log.Debug("beat advanced", "beat", beat)
	default:
		m.stuckChecks++

		if m.stuckChecks >= deadlockThreshold {
			deadlocksSuspected.Inc()
			m.fatal(&SuspectedDeadlockError{
				Threshold: deadlockThreshold,
				Interval:  m.patience.Interval,
			})

			return true
		}
	}

	return false
}

func (m *monitor) fatal(err error) {
	m.conductor.recordError(err)
	m.conductor.abort()
}
