package handler

import "sync/atomic"

// CancelToken is polled by the cross-sectioner (every 512 faces and before
// stitching each layer) and by the Engine before each Region Builder pass;
// G-code generation and writing do not poll it. It is safe for
// concurrent use: Cancel may be called from a different goroutine than the
// one running the slicing job.
type CancelToken struct {
	flag atomic.Bool
}

// NewCancelToken returns a token in the not-cancelled state.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel marks the token as cancelled. Safe to call multiple times.
func (c *CancelToken) Cancel() {
	c.flag.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (c *CancelToken) Cancelled() bool {
	if c == nil {
		return false
	}
	return c.flag.Load()
}
