package testutil

import "sync"

// DeterministicClock is a resettable trace clock for harness tests.
//
// It satisfies harness.Sequencer like the harness's own atomic clock,
// but adds Reset so a test can replay the same pasta scenario and get
// byte-identical traces: seq numbers restart at 1, so two runs of one
// scenario produce the same invocation/emission/completion stamps.
//
// Safe for concurrent use, though scenario execution itself is
// single-threaded.
type DeterministicClock struct {
	mu  sync.Mutex
	seq int64
}

// NewDeterministicClock creates a clock whose first Next returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// Next returns the next sequence number.
func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the last issued sequence number without advancing.
func (c *DeterministicClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock for scenario replay. The next call to Next
// returns 1 again.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
