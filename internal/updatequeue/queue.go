// Package updatequeue funnels scene mutations from background goroutines onto the frame thread.
package updatequeue

import "sync"

// Queue collects functions pushed from any goroutine and runs them, in push order, when the
// frame thread calls Drain. Everything that touches scene or geometry state from outside the
// frame loop goes through a Queue, so a render never sees a half-applied update.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Push schedules fn for the next Drain. Nil functions are ignored.
func (q *Queue) Push(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Drain runs everything pushed so far on the calling goroutine and returns how many ran.
// Functions pushed while draining wait for the next Drain.
func (q *Queue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Len returns the number of pending functions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
