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
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aifoundry-samples/deepresearch-go/azagents"
)

// Session is one provisioned research conversation: the agent created for
// it, the thread carrying the exchange, and the run executing the research.
type Session struct {
	AgentID  string
	ThreadID string
	RunID    string

	client *azagents.Client
	closed bool
}

// StartSession provisions a research agent with the deep_research tool
// attached, creates a thread, posts the topic as the sole user message, and
// starts a run. Any rejection along the way aborts with an
// InitializationError naming the failing step; a partially provisioned agent
// is deleted best-effort before returning.
func StartSession(ctx context.Context, client *azagents.Client, cfg *Config, topic string) (*Session, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, NewInitializationError("validate topic", errors.New("topic must not be empty"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewInitializationError("validate config", err)
	}

	connectionID := cfg.BingConnectionID
	if connectionID == "" {
		resolved, err := resolveBingConnection(ctx, client, cfg.BingResourceName)
		if err != nil {
			return nil, err
		}
		connectionID = resolved
	}

	agent, err := client.CreateAgent(ctx, azagents.CreateAgentParams{
		Model:        cfg.ModelDeployment,
		Name:         cfg.agentName(),
		Instructions: cfg.instructions(),
		Tools: []azagents.Tool{
			azagents.NewDeepResearchTool(connectionID, cfg.DeepResearchModelDeployment),
		},
	})
	if err != nil {
		return nil, NewInitializationError("create agent", err)
	}
	Logger().Info("Agent created", slog.String("agentId", agent.ID))

	// The agent is the only resource worth reclaiming when a later step
	// fails; threads carry no tool bindings and are inert without a run.
	deleteAgent := func() {
		if err := client.DeleteAgent(context.WithoutCancel(ctx), agent.ID); err != nil {
			Logger().Warn("Could not delete agent after failed initialization",
				slog.String("agentId", agent.ID),
				slog.String("error", err.Error()))
		}
	}

	thread, err := client.CreateThread(ctx)
	if err != nil {
		deleteAgent()
		return nil, NewInitializationError("create thread", err)
	}
	Logger().Info("Thread created", slog.String("threadId", thread.ID))

	message, err := client.CreateMessage(ctx, thread.ID, azagents.CreateMessageParams{
		Role:    azagents.MessageRoleUser,
		Content: topic,
	})
	if err != nil {
		deleteAgent()
		return nil, NewInitializationError("create message", err)
	}
	Logger().Info("Message created", slog.String("messageId", message.ID))

	run, err := client.CreateRun(ctx, thread.ID, azagents.CreateRunParams{AssistantID: agent.ID})
	if err != nil {
		deleteAgent()
		return nil, NewInitializationError("create run", err)
	}
	Logger().Info("Run started",
		slog.String("runId", run.ID),
		slog.String("status", string(run.Status)))

	return &Session{
		AgentID:  agent.ID,
		ThreadID: thread.ID,
		RunID:    run.ID,
		client:   client,
	}, nil
}

func resolveBingConnection(ctx context.Context, client *azagents.Client, resourceName string) (string, error) {
	Logger().Info("Bing connection ID not configured, resolving by connection name",
		slog.String("name", resourceName))

	connections, err := client.ListConnections(ctx)
	if err != nil {
		return "", NewInitializationError("list connections", err)
	}
	for _, connection := range connections {
		if connection.Name == resourceName {
			Logger().Info("Resolved Bing connection", slog.String("connectionId", connection.ID))
			return connection.ID, nil
		}
	}
	return "", NewInitializationError("resolve bing connection", fmt.Errorf(
		"no project connection named %q; copy the connection ID from the portal (Management Center -> Connected resources) into BING_CONNECTION_ID",
		resourceName))
}

// Close deletes the provisioned agent. Safe to call more than once; only
// the first call talks to the service.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.client.DeleteAgent(ctx, s.AgentID); err != nil {
		return fmt.Errorf("deleting agent %s: %w", s.AgentID, err)
	}
	Logger().Info("Agent deleted", slog.String("agentId", s.AgentID))
	return nil
}
