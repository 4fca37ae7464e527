package conduct

import (
	"sync"

	"go.uber.org/atomic"
)

// clock is the conductor's logical beat counter. The monitor is the only
// writer; workers read the current beat and block on it.
type clock struct {
	mu   sync.Mutex
	cond *sync.Cond

	// frozen gates advancement: RunFrozen holds the read side, advance
	// takes the write side, so the beat cannot move while any frozen
	// section is executing.
	frozen sync.RWMutex

	current *atomic.Int64
	halted  *atomic.Bool
}

func newClock() *clock {
	c := &clock{
		current: atomic.NewInt64(0),
		halted:  atomic.NewBool(false),
	}
	c.cond = sync.NewCond(&c.mu)

	return c
}

func (c *clock) beat() int64 {
	return c.current.Load()
}

// advance increments the beat and wakes every waiter. Blocks while any
// frozen section is in progress.
func (c *clock) advance() int64 {
	c.frozen.Lock()
	defer c.frozen.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	beat := c.current.Inc()
	c.cond.Broadcast()

	return beat
}

// awaitBeat blocks until the clock reaches the given beat, or returns
// ErrAborted if the conductor halts first.
func (c *clock) awaitBeat(beat int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.current.Load() < beat && !c.halted.Load() {
		c.cond.Wait()
	}

	if c.current.Load() < beat {
		return ErrAborted
	}

	return nil
}

// halt permanently wakes all waiters. Used on fatal errors so blocked
// workers do not outlive the conducted run.
func (c *clock) halt() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.halted.Store(true)
	c.cond.Broadcast()
}

// runFrozen executes fn while holding the beat still. Overlapping frozen
// sections from different workers run concurrently.
func (c *clock) runFrozen(fn func()) {
	c.frozen.RLock()
	defer c.frozen.RUnlock()

	fn()
}
