package engine

import "sync/atomic"

// AtomicFlag is the small shareable cancellation token the engine reads.
// Callers set it from whatever goroutine observes a cancellation request
// (e.g. a Ctrl-C signal handler); the engine only ever reads it.
type AtomicFlag struct {
	flag atomic.Bool
}

// Load implements CancelFlag.
func (f *AtomicFlag) Load() bool { return f.flag.Load() }

// Cancel requests cancellation. Safe to call from any goroutine.
func (f *AtomicFlag) Cancel() { f.flag.Store(true) }
