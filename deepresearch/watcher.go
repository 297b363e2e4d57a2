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
	"log/slog"
	"time"

	"github.com/aifoundry-samples/deepresearch-go/azagents"
)

// heartbeatEvery is how many polls pass between Info-level status lines.
// Every other poll logs at Debug only.
const heartbeatEvery = 10

// ProgressFunc receives each new intermediate agent message observed while
// a run is still executing.
type ProgressFunc func(message *azagents.ThreadMessage)

// Watcher waits for a run to reach a terminal status. The zero value plus a
// Client is usable: it polls every DefaultPollInterval with no deadline.
//
// Wait and Watch are two implementations of the same contract. Wait blocks
// the calling goroutine between polls; Watch polls on its own goroutine and
// hands observations to the caller as a stream of WatchEvents.
type Watcher struct {
	Client *azagents.Client

	// Interval between status checks. Zero means DefaultPollInterval.
	Interval time.Duration

	// Timeout bounds the whole wait. Zero means no deadline; deep research
	// runs routinely take many minutes.
	Timeout time.Duration

	// Progress, when set, receives each new intermediate agent message.
	// When nil, the watcher skips the extra message lookup entirely.
	Progress ProgressFunc
}

// Wait polls the run until it terminates. It returns the terminal run on
// completed status; a RunFailedError when the run ended failed or cancelled;
// an UnexpectedStateError on any other terminal-like status; a TimeoutError
// when Timeout expires first. Context cancellation stops polling and returns
// ctx.Err(); the remote run is left untouched.
func (w *Watcher) Wait(ctx context.Context, threadID, runID string) (*azagents.Run, error) {
	var deadline <-chan time.Time
	if w.Timeout > 0 {
		timer := time.NewTimer(w.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	var lastMessageID string
	polls := 0

	for {
		run, err := w.Client.GetRun(ctx, threadID, runID)
		if err != nil {
			return nil, fmt.Errorf("polling run %s: %w", runID, err)
		}
		polls++

		if w.Progress != nil {
			var message *azagents.ThreadMessage
			message, lastMessageID, err = w.newAgentMessage(ctx, threadID, lastMessageID)
			if err != nil {
				return nil, err
			}
			if message != nil {
				w.Progress(message)
			}
		}

		terminal, err := evaluateRun(run)
		if err != nil {
			return nil, err
		}
		if terminal {
			logRunFinished(run, polls)
			return run, nil
		}
		logRunActive(run, polls)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return nil, NewTimeoutError(runID, w.Timeout)
		case <-time.After(w.interval()):
		}
	}
}

// evaluateRun classifies one observed run status. It returns true when the
// run completed successfully, false while it is still active, and an error
// for every other outcome: failed/cancelled become a RunFailedError carrying
// the remote detail, everything else (requires_action, statuses introduced
// by newer service versions) an UnexpectedStateError.
func evaluateRun(run *azagents.Run) (terminal bool, err error) {
	switch run.Status {
	case azagents.RunStatusQueued, azagents.RunStatusInProgress:
		return false, nil
	case azagents.RunStatusCompleted:
		return true, nil
	case azagents.RunStatusFailed, azagents.RunStatusCancelled:
		return false, NewRunFailedError(run)
	default:
		return false, NewUnexpectedStateError(run.ID, run.Status)
	}
}

// newAgentMessage fetches the newest agent message on the thread and
// returns it when it differs from the one reported last. Deep research
// posts intermediate messages while the run executes; surfacing them is the
// only user-visible feedback during the wait.
func (w *Watcher) newAgentMessage(ctx context.Context, threadID, lastMessageID string) (*azagents.ThreadMessage, string, error) {
	message, err := w.Client.GetLastMessageByRole(ctx, threadID, azagents.MessageRoleAgent)
	if err != nil {
		return nil, lastMessageID, fmt.Errorf("fetching intermediate agent response: %w", err)
	}
	if message == nil || message.ID == lastMessageID {
		return nil, lastMessageID, nil
	}
	return message, message.ID, nil
}

func (w *Watcher) interval() time.Duration {
	if w.Interval > 0 {
		return w.Interval
	}
	return DefaultPollInterval
}

func logRunActive(run *azagents.Run, polls int) {
	if polls%heartbeatEvery == 0 {
		Logger().Info("Run still in progress",
			slog.String("runId", run.ID),
			slog.String("status", string(run.Status)),
			slog.Int("polls", polls))
		return
	}
	Logger().Debug("Run status",
		slog.String("runId", run.ID),
		slog.String("status", string(run.Status)),
		slog.Int("polls", polls))
}

func logRunFinished(run *azagents.Run, polls int) {
	attrs := []any{
		slog.String("runId", run.ID),
		slog.String("status", string(run.Status)),
		slog.Int("polls", polls),
	}
	if run.Usage != nil {
		attrs = append(attrs,
			slog.Int64("promptTokens", run.Usage.PromptTokens),
			slog.Int64("completionTokens", run.Usage.CompletionTokens),
			slog.Int64("totalTokens", run.Usage.TotalTokens))
	}
	Logger().Info("Run finished", attrs...)
}
