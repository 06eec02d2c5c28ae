package store

import "sync/atomic"

// Counter allocates sequential UserIDs.
//
// The counter is owned by the Store and seeded from the maximum existing
// UserID when the connection is first established. Values are strictly
// increasing for the process lifetime and are never reused, even when
// the record they were assigned to is later deleted.
//
// The counter is process-local: two processes connecting to the same
// database simultaneously can race to allocate the same UserID. That is
// an accepted limitation of the single-writer model, not something the
// counter guards against.
//
// Thread-safety: safe for concurrent use (atomic operations), though the
// shell's one-operation-at-a-time model means calls never overlap in
// practice.
type Counter struct {
	seq atomic.Int64
}

// NewCounterAt creates a counter whose next allocation is start+1.
// Seeding with the current MAX(user_id) yields max+1 on the next Add;
// seeding with 0 yields 1 on an empty store.
func NewCounterAt(start int64) *Counter {
	c := &Counter{}
	c.seq.Store(start)
	return c
}

// Next allocates and returns the next UserID.
// Each call returns a unique, strictly increasing value.
func (c *Counter) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the most recently allocated UserID without allocating.
func (c *Counter) Current() int64 {
	return c.seq.Load()
}
