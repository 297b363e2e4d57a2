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

package azagents

// Agent is a server-side assistant configured with a model, instructions
// and tools.
type Agent struct {
	ID           string `json:"id"`
	Object       string `json:"object"`
	CreatedAt    int64  `json:"created_at"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Model        string `json:"model"`
	Instructions string `json:"instructions,omitempty"`
	Tools        []Tool `json:"tools,omitempty"`
}

// Thread is a conversation between a user and an agent.
type Thread struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
}

// MessageRole identifies the author of a thread message.
type MessageRole string

const (
	MessageRoleUser MessageRole = "user"

	// MessageRoleAgent is the role of messages authored by the agent.
	// The wire value is "assistant".
	MessageRoleAgent MessageRole = "assistant"
)

// ThreadMessage is a single message within a thread.
type ThreadMessage struct {
	ID          string           `json:"id"`
	Object      string           `json:"object"`
	CreatedAt   int64            `json:"created_at"`
	ThreadID    string           `json:"thread_id"`
	Status      string           `json:"status,omitempty"`
	Role        MessageRole      `json:"role"`
	Content     []MessageContent `json:"content"`
	AssistantID string           `json:"assistant_id,omitempty"`
	RunID       string           `json:"run_id,omitempty"`
}

// TextContents returns the text blocks of the message, in order, skipping
// any non-text content.
func (m *ThreadMessage) TextContents() []MessageText {
	var texts []MessageText
	for _, c := range m.Content {
		if c.Type == "text" && c.Text != nil {
			texts = append(texts, *c.Text)
		}
	}
	return texts
}

// URLCitationAnnotations returns the url_citation annotations of all text
// blocks, in block order then annotation order.
func (m *ThreadMessage) URLCitationAnnotations() []Annotation {
	var anns []Annotation
	for _, c := range m.Content {
		if c.Type != "text" || c.Text == nil {
			continue
		}
		for _, a := range c.Text.Annotations {
			if a.Type == "url_citation" && a.URLCitation != nil {
				anns = append(anns, a)
			}
		}
	}
	return anns
}

// MessageContent is one content block of a message. Only the field matching
// Type is populated.
type MessageContent struct {
	Type string       `json:"type"`
	Text *MessageText `json:"text,omitempty"`
}

// MessageText is the text payload of a "text" content block.
type MessageText struct {
	Value       string       `json:"value"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Annotation marks a span of a text block, identified by character offsets,
// that carries extra information such as a URL citation.
type Annotation struct {
	Type        string       `json:"type"`
	Text        string       `json:"text,omitempty"`
	StartIndex  int          `json:"start_index"`
	EndIndex    int          `json:"end_index"`
	URLCitation *URLCitation `json:"url_citation,omitempty"`
}

// URLCitation is the web source referenced by a url_citation annotation.
type URLCitation struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusExpired        RunStatus = "expired"
)

// IsActive reports whether the run is still queued or being processed.
func (s RunStatus) IsActive() bool {
	return s == RunStatusQueued || s == RunStatusInProgress
}

// IsTerminal reports whether the run has reached a final state.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	}
	return false
}

// Run is one execution of an agent on a thread.
type Run struct {
	ID          string    `json:"id"`
	Object      string    `json:"object"`
	ThreadID    string    `json:"thread_id"`
	AssistantID string    `json:"assistant_id"`
	Status      RunStatus `json:"status"`
	LastError   *RunError `json:"last_error,omitempty"`
	CreatedAt   int64     `json:"created_at"`
	StartedAt   int64     `json:"started_at,omitempty"`
	CompletedAt int64     `json:"completed_at,omitempty"`
	Usage       *RunUsage `json:"usage,omitempty"`
}

// RunError describes why a run ended in the failed state.
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RunUsage reports token consumption of a finished run.
type RunUsage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// Connection is a resource connection configured on the project, such as a
// Grounding with Bing Search resource.
type Connection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// listResponse is the OpenAI-style envelope the Agents API wraps list
// results in.
type listResponse[T any] struct {
	Object  string `json:"object"`
	Data    []T    `json:"data"`
	FirstID string `json:"first_id,omitempty"`
	LastID  string `json:"last_id,omitempty"`
	HasMore bool   `json:"has_more"`
}
