package conduct

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	amperrors "github.com/amp-labs/amp-patience/errors"
	"github.com/amp-labs/amp-patience/logger"
	"github.com/amp-labs/amp-patience/timespan"
	"github.com/amp-labs/amp-patience/utils"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Conductor lifecycle phases.
const (
	phaseSetup int32 = iota
	phaseConducting
	phaseFinished
)

// DefaultPatience is the monitor configuration used when none is given: a
// generous overall timeout with a tight check interval, so beats advance
// quickly but slow hardware does not produce spurious timeouts.
var DefaultPatience = timespan.Patience{ //nolint:gochecknoglobals
	Timeout:  timespan.Seconds(5),
	Interval: timespan.Millis(10),
}

// Conductor coordinates a group of worker goroutines against a shared
// logical clock. Workers register a body, block on beats of the clock, and
// the conductor's monitor advances the clock only once every non-finished
// worker is blocked. A conductor is single-use: register workers, call
// Conduct once, inspect the result.
type Conductor struct {
	id       string
	patience timespan.Patience

	phase *atomic.Int32
	clock *clock

	startGate chan struct{}
	fatal     chan struct{}

	mu      sync.Mutex
	workers []*worker
	byName  map[string]*worker

	wg sync.WaitGroup

	errOnce  sync.Once
	firstErr error

	// Losers of the first-error race, kept for debug logging. Guarded
	// by mu.
	discarded amperrors.Collection

	abortOnce    sync.Once
	workerCtx    context.Context //nolint:containedctx // Shared by workers registered at any time
	workerCancel context.CancelFunc
}

type options struct {
	patience timespan.Patience
}

// Option adjusts how a conductor monitors its workers.
type Option func(*options)

// WithPatience sets both the overall timeout and the monitor check
// interval.
func WithPatience(patience timespan.Patience) Option {
	return func(o *options) {
		o.patience = patience
	}
}

// WithTimeout sets the overall no-progress timeout.
func WithTimeout(timeout timespan.Span) Option {
	return func(o *options) {
		o.patience.Timeout = timeout
	}
}

// WithInterval sets the monitor check interval.
func WithInterval(interval timespan.Span) Option {
	return func(o *options) {
		o.patience.Interval = interval
	}
}

// NewConductor creates a conductor in its setup phase.
func NewConductor(opts ...Option) *Conductor {
	conf := &options{patience: DefaultPatience}
	for _, opt := range opts {
		opt(conf)
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())

	return &Conductor{
		id:           uuid.New().String(),
		patience:     conf.patience,
		phase:        atomic.NewInt32(phaseSetup),
		clock:        newClock(),
		startGate:    make(chan struct{}),
		fatal:        make(chan struct{}),
		byName:       make(map[string]*worker),
		workerCtx:    workerCtx,
		workerCancel: workerCancel,
	}
}

// Register adds a named worker to the conducted group and starts its
// goroutine. The goroutine parks on the start gate until Conduct opens it;
// workers registered while conducting is already underway start
// immediately. Registration after the run has finished is refused.
func (c *Conductor) Register(name string, body func(ctx context.Context) error) (Handle, error) {
	if c.phase.Load() == phaseFinished {
		return Handle{}, newNotAllowedError("cannot register worker %q: conductor already finished", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byName[name]; exists {
		return Handle{}, newNotAllowedError("worker name %q is already registered", name)
	}

	w := newWorker(name)
	c.workers = append(c.workers, w)
	c.byName[name] = w

	c.wg.Add(1)

	go c.runWorker(w, body)

	workersRegistered.Inc()

	return Handle{w: w}, nil
}

func (c *Conductor) runWorker(w *worker, body func(ctx context.Context) error) {
	defer c.wg.Done()

	w.gid.Store(goroutineID())

	select {
	case <-c.startGate:
	case <-c.fatal:
		w.transition(workerDone)

		return
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			c.recordError(fmt.Errorf("worker %q: %w",
				w.name, utils.GetPanicRecoveryError(recovered, debug.Stack())))
			c.abort()
		}

		w.transition(workerDone)
	}()

	w.transition(workerRunning)

	if err := body(c.workerCtx); err != nil {
		c.recordError(fmt.Errorf("worker %q: %w", w.name, err))
		c.abort()
	}
}

// Beat returns the current beat of the conductor's clock. Beat zero is the
// time before the first advancement.
func (c *Conductor) Beat() int64 {
	return c.clock.beat()
}

// AwaitBeat blocks the calling worker until the clock reaches the given
// beat. It may only be called from a registered worker's goroutine, and
// only for beats starting at one. Calling it for a beat already reached
// returns immediately.
func (c *Conductor) AwaitBeat(beat int64) error {
	if beat <= 0 {
		return newNotAllowedError("cannot await beat %d: beats start at 1", beat)
	}

	w := c.callingWorker()
	if w == nil {
		return newNotAllowedError("AwaitBeat may only be called from a registered worker")
	}

	w.target.Store(beat)
	w.transition(workerBeatWaiting)

	err := c.clock.awaitBeat(beat)

	w.transition(workerRunning)

	return err
}

// RunFrozen executes fn while the clock is held still: the monitor cannot
// advance the beat until fn returns. Frozen sections from different workers
// may overlap.
func (c *Conductor) RunFrozen(fn func()) {
	c.clock.runFrozen(fn)
}

// FrozenValue evaluates fn with the clock held still and returns its
// result.
func FrozenValue[T any](c *Conductor, fn func() T) T {
	var value T

	c.clock.runFrozen(func() {
		value = fn()
	})

	return value
}

// Conduct opens the start gate, runs the monitor, and blocks until every
// worker finishes or the monitor declares the run dead. It returns the
// first error recorded by any worker or by the monitor. A conductor can
// only conduct once.
func (c *Conductor) Conduct(ctx context.Context) error {
	if !c.phase.CompareAndSwap(phaseSetup, phaseConducting) {
		return newNotAllowedError("a conductor can only conduct once")
	}

	log := logger.Get(ctx).With("conductorId", c.id)
	log.Debug("conducting", "workers", c.workerCount())

	close(c.startGate)

	mon := newMonitor(c, c.patience, log)
	go mon.run()

	allDone := make(chan struct{})

	go func() {
		c.wg.Wait()
		close(allDone)
	}()

	select {
	case <-allDone:
	case <-c.fatal:
	case <-ctx.Done():
		c.recordError(ctx.Err())
		c.abort()
	}

	mon.stop()
	c.phase.Store(phaseFinished)
	c.clock.halt()
	c.workerCancel()

	if c.firstErr != nil {
		conductsFinished.WithLabelValues(resultFailed).Inc()
		log.Debug("conducted run failed", "error", c.firstErr, "beat", c.Beat())

		if discarded := c.discardedError(); discarded != nil {
			log.Debug("subsequent failures were discarded", "error", discarded)
		}

		return c.firstErr
	}

	conductsFinished.WithLabelValues(resultOK).Inc()
	log.Debug("conducted run finished", "beat", c.Beat())

	return nil
}

// recordError keeps the first failure and discards the rest; later
// failures of an already-failing run are almost always knock-on effects.
func (c *Conductor) recordError(err error) {
	if err == nil {
		return
	}

	recorded := false

	c.errOnce.Do(func() {
		c.firstErr = err
		recorded = true
	})

	if !recorded {
		c.mu.Lock()
		defer c.mu.Unlock()

		c.discarded.Add(err)
	}
}

// discardedError returns the failures that lost the first-error race,
// joined, or nil when there were none.
func (c *Conductor) discardedError() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.discarded.GetError()
}

// Abort kills a conducted run from outside: worker contexts are canceled,
// beat waiters are released with ErrAborted, and Conduct returns ErrAborted
// unless a worker failure was already recorded.
func (c *Conductor) Abort() {
	c.recordError(ErrAborted)
	c.abort()
}

// abort shuts the run down after a fatal condition: cancels worker
// contexts, wakes beat waiters, and releases Conduct.
func (c *Conductor) abort() {
	c.abortOnce.Do(func() {
		c.workerCancel()
		c.clock.halt()
		close(c.fatal)
	})
}

func (c *Conductor) callingWorker() *worker {
	gid := goroutineID()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, w := range c.workers {
		if w.gid.Load() == gid {
			return w
		}
	}

	return nil
}

func (c *Conductor) workerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.workers)
}

func (c *Conductor) snapshotWorkers() []*worker {
	c.mu.Lock()
	defer c.mu.Unlock()

	workers := make([]*worker, len(c.workers))
	copy(workers, c.workers)

	return workers
}
