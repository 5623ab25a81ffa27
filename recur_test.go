package ammo

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurIterStops(t *testing.T) {
	var indexes []int
	completed := 0

	RecurIter(func(resolve func(bool), index int) {
		indexes = append(indexes, index)
		resolve(index < 4)
	}, func() { completed++ }, 0)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, indexes)
	assert.Equal(t, 1, completed)
}

func TestRecurIterStartIndex(t *testing.T) {
	var first = -1
	RecurIter(func(resolve func(bool), index int) {
		if first < 0 {
			first = index
		}
		resolve(false)
	}, nil, 7)
	assert.Equal(t, 7, first)
}

func TestRecurIterDeepSynchronous(t *testing.T) {
	const n = 1_000_000
	last := 0
	RecurIter(func(resolve func(bool), index int) {
		last = index
		resolve(index < n)
	}, nil, 0)
	assert.Equal(t, n, last)
}

func TestRecurIterAsyncResolve(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	var mu sync.Mutex
	var indexes []int
	RecurIter(func(resolve func(bool), index int) {
		mu.Lock()
		indexes = append(indexes, index)
		mu.Unlock()
		go func() {
			time.Sleep(time.Millisecond)
			resolve(index < 2)
		}()
	}, wg.Done, 0)

	wg.Wait()
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{0, 1, 2}, indexes)
}

func TestRecurIterUnresolvedEnds(t *testing.T) {
	completed := false
	calls := 0
	RecurIter(func(resolve func(bool), index int) {
		calls++
	}, func() { completed = true }, 0)

	assert.Equal(t, 1, calls)
	assert.False(t, completed)
}

func TestRecurIterDoubleResolve(t *testing.T) {
	calls := 0
	completes := 0
	RecurIter(func(resolve func(bool), index int) {
		calls++
		resolve(index == 0)
		resolve(true)
	}, func() { completes++ }, 0)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, completes)
}

func TestRecurIterPanics(t *testing.T) {
	assert.Panics(t, func() { RecurIter(nil, nil, 0) })
	assert.Panics(t, func() {
		RecurIter(func(resolve func(bool), index int) {}, nil, -1)
	})
}
