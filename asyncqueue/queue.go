// Copyright 2026 The Deep Research Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package asyncqueue provides an unbounded FIFO queue safe for use by
// multiple producer and consumer goroutines.
package asyncqueue

import (
	"sync"
	"time"
)

// Queue is an unbounded FIFO queue. Put never blocks; Get blocks until a
// value is available. The zero value is not usable: construct with New.
type Queue[T any] struct {
	cond *sync.Cond
	buf  []T
	head int
}

// New returns an empty Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{cond: sync.NewCond(new(sync.Mutex))}
}

// Put appends v to the tail of the queue.
func (q *Queue[T]) Put(v T) {
	q.cond.L.Lock()
	q.buf = append(q.buf, v)
	q.cond.L.Unlock()
	q.cond.Signal()
}

// Get removes and returns the value at the head of the queue, blocking
// until one is available.
func (q *Queue[T]) Get() T {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()
	for q.head == len(q.buf) {
		q.cond.Wait()
	}
	return q.pop()
}

// GetTimeout is like Get but gives up after the given duration.
// The second return value reports whether a value was received.
func (q *Queue[T]) GetTimeout(timeout time.Duration) (T, bool) {
	expired := false
	timer := time.AfterFunc(timeout, func() {
		q.cond.L.Lock()
		expired = true
		q.cond.L.Unlock()
		q.cond.Broadcast()
	})
	defer timer.Stop()

	q.cond.L.Lock()
	defer q.cond.L.Unlock()
	for q.head == len(q.buf) && !expired {
		q.cond.Wait()
	}
	if q.head == len(q.buf) {
		var zero T
		return zero, false
	}
	return q.pop(), true
}

// TryGet removes and returns the value at the head of the queue without
// blocking. The second return value reports whether a value was received.
func (q *Queue[T]) TryGet() (T, bool) {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()
	if q.head == len(q.buf) {
		var zero T
		return zero, false
	}
	return q.pop(), true
}

// Len reports the number of queued values.
func (q *Queue[T]) Len() int {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()
	return len(q.buf) - q.head
}

// IsEmpty reports whether the queue holds no values.
func (q *Queue[T]) IsEmpty() bool {
	return q.Len() == 0
}

// pop removes the head value. Callers must hold the lock.
func (q *Queue[T]) pop() T {
	v := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero // release the reference
	q.head++
	// Reclaim consumed space once it dominates the buffer.
	if q.head > 32 && q.head*2 >= len(q.buf) {
		n := copy(q.buf, q.buf[q.head:])
		clear(q.buf[n:])
		q.buf = q.buf[:n]
		q.head = 0
	}
	return v
}
