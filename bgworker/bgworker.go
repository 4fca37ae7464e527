// Package bgworker provides the shared background worker pool used by the
// asynchronous retry and deadline variants.
package bgworker

import (
	"log/slog"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/amp-patience/lazy"
)

const defaultWorkerCount = 10

// workerPool is a lazy-initialized background worker pool.
var workerPool = lazy.New[pond.Pool](func() pond.Pool { //nolint:gochecknoglobals
	slog.Debug("Initializing background worker pool", "count", defaultWorkerCount)

	return pond.NewPool(defaultWorkerCount)
})

// Submit submits a function to the background worker pool.
// It returns a Task that can be used to wait for the function to complete.
func Submit(f func()) pond.Task { //nolint:ireturn
	return workerPool.Get().Submit(f)
}

// Go submits a function to the background worker pool. It returns immediately.
// It returns an error if the pool is stopped.
func Go(f func()) error {
	return workerPool.Get().Go(f)
}
