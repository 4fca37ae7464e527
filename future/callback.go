package future

import (
	"runtime/debug"

	"github.com/amp-labs/amp-patience/logger"
	"github.com/amp-labs/amp-patience/utils"
)

// invokeCallback invokes a callback in a separate goroutine with panic
// recovery and logging.
//
// Safety guarantees:
//   - Nil callbacks are safely ignored without error
//   - Panics in callbacks are recovered and logged, preventing crashes
//   - Stack traces are captured for debugging panic sources
//   - Execution happens in a goroutine to avoid blocking the caller
//
// The kind parameter ("OnSuccess", "OnError", "OnResult") identifies which
// callback type panicked in the log output.
func invokeCallback[T any](kind string, callback func(T), value T) {
	if callback == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				if err := utils.GetPanicRecoveryError(r, debug.Stack()); err != nil {
					logger.Get().Error("panic encountered in future."+kind+" callback", "error", err)
				}
			}
		}()

		callback(value)
	}()
}
