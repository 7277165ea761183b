// Package buffer provides an unbounded queue for handing values from a
// producer that must not block to a slower consumer.
package buffer

import "sync"

// Queue is a FIFO with non-blocking Push and a channel-based receive
// side. Pushed values are held in memory until the consumer takes them.
//
//	q := buffer.NewQueue[Event]()
//	go func() {
//	    for e := range q.Out() {
//	        write(e)
//	    }
//	}()
//	q.Push(e) // never blocks
//	q.Close() // Out is closed once drained
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	head   int
	closed bool

	// wake holds at most one pending notification for the pump.
	wake chan struct{}
	out  chan T
}

// NewQueue creates a Queue and starts the goroutine feeding Out. The
// goroutine exits after Close once every queued value is delivered.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{
		wake: make(chan struct{}, 1),
		out:  make(chan T),
	}
	go q.pump()
	return q
}

// Push appends v. It reports false, dropping v, if the queue is closed.
// Safe for concurrent use.
func (q *Queue[T]) Push(v T) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	q.notify()
	return true
}

// Out returns the receive side. It is closed after Close once the
// queue is drained.
func (q *Queue[T]) Out() <-chan T {
	return q.out
}

// Close stops accepting values. Calling it more than once is a no-op.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	q.notify()
}

// Pending returns the number of values not yet handed to Out.
func (q *Queue[T]) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

func (q *Queue[T]) notify() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue[T]) pump() {
	defer close(q.out)
	for {
		v, ok, done := q.pop()
		if done {
			return
		}
		if !ok {
			<-q.wake
			continue
		}
		q.out <- v
	}
}

// pop takes the head value. done is true once the queue is closed and
// empty; ok is false when the pump has to wait for a Push.
func (q *Queue[T]) pop() (v T, ok, done bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return v, false, q.closed
	}

	v = q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return v, true, false
}
