package ge

import "sync/atomic"

var defaultHelper atomic.Pointer[Helper]

// Default returns the process-wide helper, creating an uninitialized one
// on first use.
func Default() *Helper {
	if h := defaultHelper.Load(); h != nil {
		return h
	}
	defaultHelper.CompareAndSwap(nil, New())
	return defaultHelper.Load()
}

// SetDefault replaces the process-wide helper. Nil resets it so the next
// Default call creates a fresh one.
func SetDefault(h *Helper) {
	defaultHelper.Store(h)
}
