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

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CreateThread starts a new empty thread.
func (c *Client) CreateThread(ctx context.Context) (*Thread, error) {
	var thread Thread
	err := c.do(ctx, http.MethodPost, "/threads", nil, struct{}{}, &thread)
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// CreateMessageParams are the fields for CreateMessage.
type CreateMessageParams struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// CreateMessage appends a message to a thread.
func (c *Client) CreateMessage(ctx context.Context, threadID string, params CreateMessageParams) (*ThreadMessage, error) {
	var message ThreadMessage
	err := c.do(ctx, http.MethodPost, "/threads/"+url.PathEscape(threadID)+"/messages", nil, params, &message)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListMessagesParams are the optional filters for ListMessages.
type ListMessagesParams struct {
	// Order sorts by creation time, "asc" or "desc". The service default
	// is "desc".
	Order string
	// Limit caps the number of messages returned, 1 to 100.
	Limit int
	// RunID restricts the listing to messages created by one run.
	RunID string
}

// ListMessages returns the messages of a thread.
func (c *Client) ListMessages(ctx context.Context, threadID string, params ListMessagesParams) ([]ThreadMessage, error) {
	query := url.Values{}
	if params.Order != "" {
		query.Set("order", params.Order)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.RunID != "" {
		query.Set("run_id", params.RunID)
	}

	var list listResponse[ThreadMessage]
	err := c.do(ctx, http.MethodGet, "/threads/"+url.PathEscape(threadID)+"/messages", query, nil, &list)
	if err != nil {
		return nil, err
	}
	return list.Data, nil
}

// GetLastMessageByRole returns the most recent message in the thread
// authored by role, or nil when the thread has none.
func (c *Client) GetLastMessageByRole(ctx context.Context, threadID string, role MessageRole) (*ThreadMessage, error) {
	messages, err := c.ListMessages(ctx, threadID, ListMessagesParams{Order: "desc"})
	if err != nil {
		return nil, err
	}
	for i := range messages {
		if messages[i].Role == role {
			return &messages[i], nil
		}
	}
	return nil, nil
}
