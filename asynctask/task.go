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

package asynctask

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type Task[T any] struct {
	mu       sync.Mutex
	cancel   context.CancelFunc
	canceled bool
	finished bool
	done     chan struct{}
	result   Result[T]
}

type Result[T any] struct {
	Value T
	Error error
}

var ErrCanceled = errors.New("task has been canceled")

type TaskFunc[T any] = func(context.Context) (T, error)

func Start[T any](ctx context.Context, fn TaskFunc[T]) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		var value T
		var err error

		defer func() {
			if r := recover(); r != nil {
				err = errors.Join(err, fmt.Errorf("task panicked: %v", r))
			}

			t.mu.Lock()
			if t.canceled {
				err = errors.Join(err, ErrCanceled)
			}
			t.result = Result[T]{Value: value, Error: err}
			t.finished = true
			t.mu.Unlock()
			close(t.done)

			cancel()
		}()

		value, err = fn(ctx)
	}()

	return t
}

type TaskNoValue = Task[struct{}]

func StartNoValue(ctx context.Context, fn func(context.Context) error) *TaskNoValue {
	return Start(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
}

func (t *Task[T]) Await() Result[T] {
	<-t.done
	return t.result
}

// Done is closed when the task completes, for use in select statements.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

func (t *Task[T]) IsDone() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (t *Task[T]) IsCanceled() bool {
	t.mu.Lock()
	canceled := t.canceled
	t.mu.Unlock()
	return canceled
}

func (t *Task[T]) Cancel() {
	t.mu.Lock()
	if !t.finished && !t.canceled {
		t.canceled = true
		t.cancel()
	}
	t.mu.Unlock()
}
