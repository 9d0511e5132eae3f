package fetchclient

import (
	"context"
	"time"
)

// composeContext derives the effective cancellation context for one
// request from the caller's context and the request timeout.
//
// With no timeout the parent is returned unchanged, so no timer is ever
// started. With a timeout, the returned context cancels when the timer
// fires or the parent cancels, whichever happens first; the timeout path
// carries a timeout-flavored *Error as its cancellation cause so the
// pipeline can distinguish it from a caller-side abort. The returned
// CancelFunc must always be called to release the timer.
func composeContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		return parent, func() {}
	}
	return context.WithTimeoutCause(parent, timeout, timeoutError(timeout))
}
