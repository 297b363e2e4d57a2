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
)

// CreateRunParams are the fields for CreateRun.
type CreateRunParams struct {
	AssistantID string `json:"assistant_id"`
}

// CreateRun starts an agent run on a thread.
func (c *Client) CreateRun(ctx context.Context, threadID string, params CreateRunParams) (*Run, error) {
	var run Run
	err := c.do(ctx, http.MethodPost, "/threads/"+url.PathEscape(threadID)+"/runs", nil, params, &run)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun fetches the current state of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var run Run
	err := c.do(ctx, http.MethodGet, "/threads/"+url.PathEscape(threadID)+"/runs/"+url.PathEscape(runID), nil, nil, &run)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
