package harness

import "sync/atomic"

// Sequencer hands out trace sequence numbers.
// The harness uses one sequencer per run; tests may inject a resettable
// one (testutil.DeterministicClock) to rerun scenarios with identical
// seq values.
type Sequencer interface {
	Next() int64
}

// Clock is a monotonic logical clock for trace ordering.
//
// Every trace event is stamped with a strictly increasing seq number
// from this clock, so replaying a scenario produces an identical trace
// with no wall-clock involvement.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though scenario execution is single-threaded and only one goroutine
// typically calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
// The first call to Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
