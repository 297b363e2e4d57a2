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
	"fmt"
	"time"

	"github.com/aifoundry-samples/deepresearch-go/azagents"
)

// None of the errors below are recovered locally. They surface to the
// caller, which is expected to report them and exit non-zero.

// InitializationError is returned when session setup fails: resolving the
// Bing connection, or creating the agent, thread, message or run. Step names
// the operation that was rejected.
type InitializationError struct {
	Step string
	Err  error
}

func NewInitializationError(step string, err error) *InitializationError {
	return &InitializationError{Step: step, Err: err}
}

func (err *InitializationError) Error() string {
	return fmt.Sprintf("initialization failed at %s: %v", err.Step, err.Err)
}

func (err *InitializationError) Unwrap() error { return err.Err }

// RunFailedError is returned when the remote run ends in the failed or
// cancelled state. Code and Message carry the remote error detail, when the
// service provided one.
type RunFailedError struct {
	RunID   string
	Status  azagents.RunStatus
	Code    string
	Message string
}

// NewRunFailedError builds a RunFailedError from a terminal run.
func NewRunFailedError(run *azagents.Run) *RunFailedError {
	err := &RunFailedError{RunID: run.ID, Status: run.Status}
	if run.LastError != nil {
		err.Code = run.LastError.Code
		err.Message = run.LastError.Message
	}
	return err
}

func (err *RunFailedError) Error() string {
	msg := fmt.Sprintf("run %s ended with status %s", err.RunID, err.Status)
	if err.Code != "" || err.Message != "" {
		msg += fmt.Sprintf(": %s: %s", err.Code, err.Message)
	}
	return msg
}

// UnexpectedStateError is returned when a run reaches a status the watcher
// does not handle, such as requires_action or a status introduced by a newer
// service version.
type UnexpectedStateError struct {
	RunID  string
	Status azagents.RunStatus
}

func NewUnexpectedStateError(runID string, status azagents.RunStatus) *UnexpectedStateError {
	return &UnexpectedStateError{RunID: runID, Status: status}
}

func (err *UnexpectedStateError) Error() string {
	return fmt.Sprintf("run %s reached unexpected status %q", err.RunID, err.Status)
}

// EmptyTranscriptError is returned when a completed run left no agent
// message on the thread.
type EmptyTranscriptError struct {
	ThreadID string
}

func NewEmptyTranscriptError(threadID string) *EmptyTranscriptError {
	return &EmptyTranscriptError{ThreadID: threadID}
}

func (err *EmptyTranscriptError) Error() string {
	return fmt.Sprintf("thread %s contains no agent message", err.ThreadID)
}

// InvalidAnnotationError is returned when a citation annotation carries a
// span that cannot be applied to its text block: out of range, inverted, or
// overlapping a previous span.
type InvalidAnnotationError struct {
	Reason     string
	StartIndex int
	EndIndex   int
}

func NewInvalidAnnotationError(reason string, startIndex, endIndex int) *InvalidAnnotationError {
	return &InvalidAnnotationError{Reason: reason, StartIndex: startIndex, EndIndex: endIndex}
}

func (err *InvalidAnnotationError) Error() string {
	return fmt.Sprintf("invalid annotation span [%d:%d]: %s", err.StartIndex, err.EndIndex, err.Reason)
}

// TimeoutError is returned when a watcher deadline expires before the run
// reaches a terminal status. The remote run keeps going; only the local wait
// gives up.
type TimeoutError struct {
	RunID   string
	Timeout time.Duration
}

func NewTimeoutError(runID string, timeout time.Duration) *TimeoutError {
	return &TimeoutError{RunID: runID, Timeout: timeout}
}

func (err *TimeoutError) Error() string {
	return fmt.Sprintf("run %s did not reach a terminal status within %v", err.RunID, err.Timeout)
}

// WriteError is returned when persisting the report fails.
type WriteError struct {
	Path string
	Err  error
}

func NewWriteError(path string, err error) *WriteError {
	return &WriteError{Path: path, Err: err}
}

func (err *WriteError) Error() string {
	return fmt.Sprintf("writing report to %s: %v", err.Path, err.Err)
}

func (err *WriteError) Unwrap() error { return err.Err }
