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

// CreateAgentParams are the fields for CreateAgent.
type CreateAgentParams struct {
	Model        string `json:"model"`
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Tools        []Tool `json:"tools,omitempty"`
}

// CreateAgent provisions a new agent on the project.
func (c *Client) CreateAgent(ctx context.Context, params CreateAgentParams) (*Agent, error) {
	var agent Agent
	err := c.do(ctx, http.MethodPost, "/assistants", nil, params, &agent)
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// DeleteAgent removes an agent from the project.
func (c *Client) DeleteAgent(ctx context.Context, agentID string) error {
	return c.do(ctx, http.MethodDelete, "/assistants/"+url.PathEscape(agentID), nil, nil, nil)
}
