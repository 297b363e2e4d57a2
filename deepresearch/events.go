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

import "github.com/aifoundry-samples/deepresearch-go/azagents"

// WatchEvent is an event observed while waiting for a run to complete.
type WatchEvent interface {
	isWatchEvent()
}

// RunStatusEvent reports the status seen by one poll of the run.
type RunStatusEvent struct {
	// The status observed.
	Status azagents.RunStatus

	// Number of polls performed so far, counting this one.
	Polls int
}

func (RunStatusEvent) isWatchEvent() {}

// AgentMessageEvent carries an intermediate agent message that appeared on
// the thread while the run was still in progress. Deep research runs post
// these as the research advances, before the final answer.
type AgentMessageEvent struct {
	// The new message, with its citation annotations.
	Message *azagents.ThreadMessage
}

func (AgentMessageEvent) isWatchEvent() {}

// RunCompletedEvent is the last event of a successful watch: the run
// reached the completed status.
type RunCompletedEvent struct {
	// The terminal run, including usage metadata when the service reports it.
	Run *azagents.Run
}

func (RunCompletedEvent) isWatchEvent() {}
