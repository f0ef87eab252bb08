package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTempIDSequence(t *testing.T) {
	var source TempIDSource

	assert.Equal(t, int64(-1), source.Next(), "the first temporary ID must be -1")
	assert.Equal(t, int64(-2), source.Next())
	assert.Equal(t, int64(-3), source.Next())
}

func TestTempIDUniqueUnderConcurrency(t *testing.T) {
	var source TempIDSource

	const goroutines = 8
	const perGoroutine = 1000

	ids := make(chan int64, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				ids <- source.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "temporary ID %d was issued twice", id)
		assert.Negative(t, id)
		seen[id] = true
	}
	assert.Len(t, seen, goroutines*perGoroutine)
}

func TestIsTemp(t *testing.T) {
	assert.True(t, IsTemp(-1))
	assert.True(t, IsTemp(-4923))
	assert.False(t, IsTemp(0))
	assert.False(t, IsTemp(1))
	assert.False(t, IsTemp(4923))
}
