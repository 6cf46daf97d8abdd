package updatequeue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrainRunsInOrder(t *testing.T) {
	q := New()
	var got []int
	for i := 0; i < 5; i++ {
		q.Push(func() { got = append(got, i) })
	}
	q.Push(nil)
	assert.Equal(t, 5, q.Len())
	assert.Equal(t, 5, q.Drain())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.Equal(t, 0, q.Drain())
}

func TestPushDuringDrainWaits(t *testing.T) {
	q := New()
	ran := 0
	q.Push(func() {
		ran++
		q.Push(func() { ran++ })
	})
	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, 1, ran)
	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, 2, ran)
}

func TestConcurrentPush(t *testing.T) {
	q := New()
	var wg sync.WaitGroup
	counter := 0
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(func() { counter++ })
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, q.Drain())
	assert.Equal(t, 800, counter)
}
