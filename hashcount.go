package mbst

import "sync/atomic"

// CountingHashFunc wraps fn, counting every invocation. It exists to let
// tests verify the design note that a single insert or delete invokes the
// hash function O(log n) times (spec.md §9), grounded on the teacher's
// m.debug structural tracing rather than on anything a caller would want in
// production.
type CountingHashFunc struct {
	fn    HashFunc
	count atomic.Int64
}

// NewCountingHashFunc wraps fn. If fn is nil, it wraps the default SHA256
// HashFunc.
func NewCountingHashFunc(fn HashFunc) *CountingHashFunc {
	if fn == nil {
		fn, _ = builtinHashFunc(SHA256)
	}
	return &CountingHashFunc{fn: fn}
}

// HashFunc returns the HashFunc to pass to WithHashFunc.
func (c *CountingHashFunc) HashFunc() HashFunc {
	return func(b []byte) (string, error) {
		c.count.Add(1)
		return c.fn(b)
	}
}

// Count returns the number of times the wrapped function has been called.
func (c *CountingHashFunc) Count() int64 {
	return c.count.Load()
}

// Reset zeroes the counter.
func (c *CountingHashFunc) Reset() {
	c.count.Store(0)
}
