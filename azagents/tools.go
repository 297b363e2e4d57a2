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

// Tool is a capability attached to an agent. Only the field matching Type
// is populated.
type Tool struct {
	Type         string               `json:"type"`
	DeepResearch *DeepResearchDetails `json:"deep_research,omitempty"`
}

// DeepResearchDetails configures the deep_research tool: the reasoning model
// that drives the research and the Bing grounding connections it may search
// with.
type DeepResearchDetails struct {
	Model                    string                    `json:"model"`
	BingGroundingConnections []BingGroundingConnection `json:"bing_grounding_connections"`
}

// BingGroundingConnection references a Grounding with Bing Search connection
// by its project connection ID.
type BingGroundingConnection struct {
	ConnectionID string `json:"connection_id"`
}

// NewDeepResearchTool builds a deep_research tool definition bound to a Bing
// grounding connection and a Deep Research model deployment.
func NewDeepResearchTool(bingConnectionID, deepResearchModel string) Tool {
	return Tool{
		Type: "deep_research",
		DeepResearch: &DeepResearchDetails{
			Model: deepResearchModel,
			BingGroundingConnections: []BingGroundingConnection{
				{ConnectionID: bingConnectionID},
			},
		},
	}
}
