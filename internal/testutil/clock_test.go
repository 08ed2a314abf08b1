package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicClock_StartsAtZero(t *testing.T) {
	clock := NewDeterministicClock()
	assert.Equal(t, int64(0), clock.Current())
}

func TestDeterministicClock_NextIncrementsMonotonically(t *testing.T) {
	clock := NewDeterministicClock()

	assert.Equal(t, int64(1), clock.Next())
	assert.Equal(t, int64(2), clock.Next())
	assert.Equal(t, int64(3), clock.Next())
	assert.Equal(t, int64(3), clock.Current())
}

func TestDeterministicClock_Reset(t *testing.T) {
	clock := NewDeterministicClock()

	clock.Next()
	clock.Next()
	require.Equal(t, int64(2), clock.Current())

	clock.Reset()
	assert.Equal(t, int64(0), clock.Current())
	assert.Equal(t, int64(1), clock.Next())
}

func TestDeterministicClock_ThreadSafe(t *testing.T) {
	clock := NewDeterministicClock()
	const goroutines = 50
	const callsEach = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)

	results := make([][]int64, goroutines)
	for i := 0; i < goroutines; i++ {
		results[i] = make([]int64, callsEach)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < callsEach; j++ {
				results[idx][j] = clock.Next()
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for i := 0; i < goroutines; i++ {
		for j := 0; j < callsEach; j++ {
			val := results[i][j]
			require.False(t, seen[val], "duplicate value %d", val)
			seen[val] = true
		}
	}
	assert.Len(t, seen, goroutines*callsEach)
	assert.Equal(t, int64(goroutines*callsEach), clock.Current())
}

func TestDeterministicClock_SameSequenceEveryRun(t *testing.T) {
	a := NewDeterministicClock()
	b := NewDeterministicClock()

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}
