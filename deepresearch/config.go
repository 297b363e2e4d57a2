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
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultOutputPath is where the report lands when no other path is
	// configured.
	DefaultOutputPath = "research_summary.md"

	// DefaultPollInterval is the delay between run status checks.
	DefaultPollInterval = time.Second

	// DefaultAgentName names the provisioned research agent.
	DefaultAgentName = "my-agent"

	// DefaultInstructions are the system instructions of the research agent.
	DefaultInstructions = "You are a helpful Agent that assists in researching scientific topics."
)

// Config holds everything the pipeline needs. It is passed explicitly so
// the core stays testable without touching the process environment.
type Config struct {
	// Endpoint is the Azure AI Foundry project endpoint, e.g.
	// https://my-resource.services.ai.azure.com/api/projects/my-project.
	Endpoint string

	// ModelDeployment is the chat model deployment driving the agent.
	ModelDeployment string

	// DeepResearchModelDeployment is the reasoning model deployment behind
	// the deep_research tool.
	DeepResearchModelDeployment string

	// BingConnectionID is the project connection ID of the Grounding with
	// Bing Search resource. When empty, it is resolved at session start by
	// listing the project's connections and matching BingResourceName.
	BingConnectionID string

	// BingResourceName is the connection name used to resolve
	// BingConnectionID when that is not set.
	BingResourceName string

	// AgentName and Instructions configure the provisioned agent. Empty
	// values fall back to DefaultAgentName and DefaultInstructions.
	AgentName    string
	Instructions string

	// OutputPath is the file the report is written to. Empty falls back to
	// DefaultOutputPath.
	OutputPath string

	// PollInterval is the delay between run status checks. Zero falls back
	// to DefaultPollInterval.
	PollInterval time.Duration

	// Timeout bounds the whole wait for run completion. Zero means no
	// deadline: deep research runs routinely take many minutes.
	Timeout time.Duration
}

// LoadConfig builds a Config from the environment variables the original
// Azure samples use: PROJECT_ENDPOINT, MODEL_DEPLOYMENT_NAME,
// DEEP_RESEARCH_MODEL_DEPLOYMENT_NAME, and either BING_CONNECTION_ID (also
// accepted as AZURE_BING_CONNECTION_ID) or BING_RESOURCE_NAME.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Endpoint:                    strings.TrimSpace(os.Getenv("PROJECT_ENDPOINT")),
		ModelDeployment:             strings.TrimSpace(os.Getenv("MODEL_DEPLOYMENT_NAME")),
		DeepResearchModelDeployment: strings.TrimSpace(os.Getenv("DEEP_RESEARCH_MODEL_DEPLOYMENT_NAME")),
		BingConnectionID:            strings.TrimSpace(getenv("AZURE_BING_CONNECTION_ID", os.Getenv("BING_CONNECTION_ID"))),
		BingResourceName:            strings.TrimSpace(os.Getenv("BING_RESOURCE_NAME")),
		OutputPath:                  getenv("DEEP_RESEARCH_OUTPUT_PATH", DefaultOutputPath),
		PollInterval:                DefaultPollInterval,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports whether the Config is sufficient to start a session.
func (c *Config) Validate() error {
	var missing []string
	if c.Endpoint == "" {
		missing = append(missing, "Endpoint (PROJECT_ENDPOINT)")
	}
	if c.ModelDeployment == "" {
		missing = append(missing, "ModelDeployment (MODEL_DEPLOYMENT_NAME)")
	}
	if c.DeepResearchModelDeployment == "" {
		missing = append(missing, "DeepResearchModelDeployment (DEEP_RESEARCH_MODEL_DEPLOYMENT_NAME)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("deepresearch: missing configuration: %s", strings.Join(missing, ", "))
	}
	if c.BingConnectionID == "" && c.BingResourceName == "" {
		return errors.New("deepresearch: set BING_CONNECTION_ID or BING_RESOURCE_NAME so the deep_research tool can ground its searches")
	}
	if c.PollInterval < 0 {
		return errors.New("deepresearch: PollInterval must not be negative")
	}
	if c.Timeout < 0 {
		return errors.New("deepresearch: Timeout must not be negative")
	}
	return nil
}

// agentName returns the configured agent name or the default.
func (c *Config) agentName() string {
	if c.AgentName != "" {
		return c.AgentName
	}
	return DefaultAgentName
}

func (c *Config) instructions() string {
	if c.Instructions != "" {
		return c.Instructions
	}
	return DefaultInstructions
}

func (c *Config) outputPath() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	return DefaultOutputPath
}

func (c *Config) pollInterval() time.Duration {
	if c.PollInterval > 0 {
		return c.PollInterval
	}
	return DefaultPollInterval
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
