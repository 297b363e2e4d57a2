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

package deepresearch

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/aifoundry-samples/deepresearch-go/asyncqueue"
	"github.com/aifoundry-samples/deepresearch-go/asynctask"
	"github.com/aifoundry-samples/deepresearch-go/azagents"
)

// watchDoneSentinel marks the end of the event queue. It never reaches the
// consumer callback.
type watchDoneSentinel struct{}

func (watchDoneSentinel) isWatchEvent() {}

// RunWatch is the cooperative counterpart of Watcher.Wait. A poller
// goroutine feeds WatchEvents into a queue; the caller drains them with
// StreamEvents or Seq while remaining free to schedule other work.
type RunWatch struct {
	threadID string
	runID    string

	queue  *asyncqueue.Queue[WatchEvent]
	poller *asynctask.TaskNoValue

	mu  sync.Mutex
	run *azagents.Run
	err error
}

// Watch starts polling the run on its own goroutine and returns immediately.
// Intermediate agent messages are emitted as AgentMessageEvents; the Progress
// callback is not used in this mode. Cancel the ctx or call RunWatch.Cancel
// to stop polling early; the remote run itself is left untouched.
func (w *Watcher) Watch(ctx context.Context, threadID, runID string) *RunWatch {
	watch := &RunWatch{
		threadID: threadID,
		runID:    runID,
		queue:    asyncqueue.New[WatchEvent](),
	}
	watch.poller = asynctask.StartNoValue(ctx, func(ctx context.Context) error {
		defer watch.queue.Put(watchDoneSentinel{})
		return w.pollToQueue(ctx, watch)
	})
	return watch
}

// pollToQueue is Wait's loop re-expressed as an event producer: same status
// interpretation, same interval, same deadline handling, but every
// observation goes through the queue instead of return values and callbacks.
func (w *Watcher) pollToQueue(ctx context.Context, watch *RunWatch) error {
	var deadline <-chan time.Time
	if w.Timeout > 0 {
		timer := time.NewTimer(w.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	var lastMessageID string
	polls := 0

	for {
		run, err := w.Client.GetRun(ctx, watch.threadID, watch.runID)
		if err != nil {
			return fmt.Errorf("polling run %s: %w", watch.runID, err)
		}
		polls++
		watch.queue.Put(RunStatusEvent{Status: run.Status, Polls: polls})

		message, nextID, err := w.newAgentMessage(ctx, watch.threadID, lastMessageID)
		if err != nil {
			return err
		}
		lastMessageID = nextID
		if message != nil {
			watch.queue.Put(AgentMessageEvent{Message: message})
		}

		terminal, err := evaluateRun(run)
		if err != nil {
			return err
		}
		if terminal {
			logRunFinished(run, polls)
			watch.setRun(run)
			watch.queue.Put(RunCompletedEvent{Run: run})
			return nil
		}
		logRunActive(run, polls)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return NewTimeoutError(watch.runID, w.Timeout)
		case <-time.After(w.interval()):
		}
	}
}

// StreamEvents calls fn for each event, in order, until the watch finishes.
// It returns nil after the run completed; otherwise the error the watch
// ended with (RunFailedError, UnexpectedStateError, TimeoutError, transport
// or context error), or the first error returned by fn. When fn errors,
// polling is cancelled and the remaining queued events are discarded.
func (rw *RunWatch) StreamEvents(fn func(WatchEvent) error) error {
	var fnErr error
	for {
		event := rw.queue.Get()
		if _, ok := event.(watchDoneSentinel); ok {
			break
		}
		if fnErr != nil {
			continue
		}
		if err := fn(event); err != nil {
			fnErr = err
			rw.Cancel()
		}
	}

	result := rw.poller.Await()
	err := fnErr
	if err == nil {
		err = result.Error
	}
	rw.setErr(err)
	return err
}

// Seq returns a single-use iterator over the watch events. Breaking out of
// the loop cancels polling. After iteration, Err reports how the watch
// ended.
func (rw *RunWatch) Seq() iter.Seq[WatchEvent] {
	return func(yield func(WatchEvent) bool) {
		canYield := true
		_ = rw.StreamEvents(func(event WatchEvent) error {
			if canYield {
				canYield = yield(event)
				if !canYield {
					rw.Cancel()
				}
			}
			return nil
		})
	}
}

// Cancel stops polling. Queued events are still delivered, followed by the
// cancellation error from StreamEvents. The remote run is not cancelled.
func (rw *RunWatch) Cancel() {
	rw.poller.Cancel()
}

// Run returns the terminal run after a successful watch, nil before
// completion or on failure.
func (rw *RunWatch) Run() *azagents.Run {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.run
}

// Err reports how the watch ended. It is meaningful once StreamEvents or
// Seq returned.
func (rw *RunWatch) Err() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.err
}

func (rw *RunWatch) setRun(run *azagents.Run) {
	rw.mu.Lock()
	rw.run = run
	rw.mu.Unlock()
}

func (rw *RunWatch) setErr(err error) {
	rw.mu.Lock()
	rw.err = err
	rw.mu.Unlock()
}
