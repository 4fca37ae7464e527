package deadline

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/amp-labs/amp-patience/logger"
	"github.com/amp-labs/amp-patience/should"
)

// Signaler is a best-effort strategy for interrupting an in-progress
// operation once its deadline has passed. A signaler closes over whatever
// resource it needs (a cancel function, a connection); Signal itself takes
// no arguments and must be safe to call from the timer goroutine.
//
// Signaling is strictly best-effort: with NoSignal, the wrapped operation
// keeps running in the background until it finishes naturally, even though
// the deadline error has already been returned to the caller.
type Signaler interface {
	// Signal attempts to interrupt the operation. It must not block.
	Signal()
}

// SignalerFunc adapts a plain function to the Signaler interface.
type SignalerFunc func()

// Signal invokes the function.
func (f SignalerFunc) Signal() {
	f()
}

// NoSignal returns a signaler that does nothing. Use it when the operation
// is cooperative-only and cannot be interrupted.
func NoSignal() Signaler { //nolint:ireturn
	return SignalerFunc(func() {})
}

// CancelContext returns a signaler that cancels the given cancel function.
// This is the default interruption strategy: operations that honor their
// context stop promptly when the deadline fires.
func CancelContext(cancel context.CancelFunc) Signaler { //nolint:ireturn
	return SignalerFunc(func() {
		cancel()
	})
}

// CloseConn returns a signaler that closes the given connection (or any
// closer). Closing unblocks goroutines stuck in Read or Write on a socket
// that ignores context cancellation.
func CloseConn(conn io.Closer) Signaler { //nolint:ireturn
	return SignalerFunc(func() {
		should.Close(conn, "failed to close connection while signaling deadline")
	})
}

// WakeConn returns a signaler that sets an immediate deadline on the given
// connection. Pending and future I/O fails with a timeout error, but the
// connection itself stays usable after the deadline is cleared; use this
// when the socket must survive the interruption.
func WakeConn(conn net.Conn) Signaler { //nolint:ireturn
	return SignalerFunc(func() {
		if err := conn.SetDeadline(time.Now()); err != nil {
			logger.Get().Error("failed to wake connection while signaling deadline", "error", err)
		}
	})
}
