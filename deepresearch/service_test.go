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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/aifoundry-samples/deepresearch-go/azagents"
	"github.com/stretchr/testify/require"
)

type staticCredential string

func (c staticCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: string(c), ExpiresOn: time.Now().Add(time.Hour)}, nil
}

const (
	fakeAgentID  = "asst_fake"
	fakeThreadID = "thread_fake"
	fakeRunID    = "run_fake"
)

// fakeAgentsService scripts an Azure AI Agents project behind an httptest
// server. GetRun serves statuses in order, repeating the last one; the
// message listing always returns messages newest first, the way the real
// service answers order=desc.
type fakeAgentsService struct {
	mu sync.Mutex

	statuses    []azagents.RunStatus
	statusIndex int
	lastError   *azagents.RunError
	usage       *azagents.RunUsage

	messages    []azagents.ThreadMessage
	connections []azagents.Connection

	// revealAtPoll makes a message appear on the thread when GetRun is
	// served for the n-th time, so the same poll's message lookup finds it.
	revealAtPoll map[int]azagents.ThreadMessage

	// failures maps "METHOD /path" to a status code the handler answers
	// with instead of the scripted response.
	failures map[string]int

	createAgentParams []azagents.CreateAgentParams
	deletedAgents     []string
	postedMessages    []azagents.CreateMessageParams
	getRunCalls       int
	listMessageCalls  int
	runsCreated       int
}

// Accessors below take the lock: the handler mutates these counters on the
// server goroutines.

func (s *fakeAgentsService) runPolls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getRunCalls
}

func (s *fakeAgentsService) messageListings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listMessageCalls
}

func (s *fakeAgentsService) deletedAgentIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletedAgents...)
}

func (s *fakeAgentsService) agentParams() []azagents.CreateAgentParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]azagents.CreateAgentParams(nil), s.createAgentParams...)
}

func (s *fakeAgentsService) userMessages() []azagents.CreateMessageParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]azagents.CreateMessageParams(nil), s.postedMessages...)
}

func newFakeAgentsService(t *testing.T) (*fakeAgentsService, *azagents.Client) {
	t.Helper()
	service := &fakeAgentsService{
		revealAtPoll: make(map[int]azagents.ThreadMessage),
		failures:     make(map[string]int),
	}
	server := httptest.NewServer(service)
	t.Cleanup(server.Close)

	client, err := azagents.NewClient(server.URL, staticCredential("fake_token"), nil)
	require.NoError(t, err)
	return service, client
}

func (s *fakeAgentsService) nextStatus() azagents.RunStatus {
	if len(s.statuses) == 0 {
		return azagents.RunStatusCompleted
	}
	status := s.statuses[min(s.statusIndex, len(s.statuses)-1)]
	s.statusIndex++
	return status
}

func (s *fakeAgentsService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code, ok := s.failures[r.Method+" "+r.URL.Path]; ok {
		w.WriteHeader(code)
		writeJSON(w, map[string]any{"error": map[string]string{
			"code":    "server_error",
			"message": "induced failure",
		}})
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/assistants":
		var params azagents.CreateAgentParams
		decodeJSON(r, &params)
		s.createAgentParams = append(s.createAgentParams, params)
		writeJSON(w, azagents.Agent{ID: fakeAgentID, Object: "assistant", Model: params.Model, Name: params.Name})

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/assistants/"):
		id := strings.TrimPrefix(r.URL.Path, "/assistants/")
		s.deletedAgents = append(s.deletedAgents, id)
		writeJSON(w, map[string]any{"id": id, "object": "assistant.deleted", "deleted": true})

	case r.Method == http.MethodPost && r.URL.Path == "/threads":
		writeJSON(w, azagents.Thread{ID: fakeThreadID, Object: "thread"})

	case r.Method == http.MethodPost && r.URL.Path == "/threads/"+fakeThreadID+"/messages":
		var params azagents.CreateMessageParams
		decodeJSON(r, &params)
		s.postedMessages = append(s.postedMessages, params)
		message := azagents.ThreadMessage{
			ID:       "msg_user",
			Object:   "thread.message",
			ThreadID: fakeThreadID,
			Role:     params.Role,
			Content: []azagents.MessageContent{{
				Type: "text",
				Text: &azagents.MessageText{Value: params.Content},
			}},
		}
		s.messages = append([]azagents.ThreadMessage{message}, s.messages...)
		writeJSON(w, message)

	case r.Method == http.MethodGet && r.URL.Path == "/threads/"+fakeThreadID+"/messages":
		s.listMessageCalls++
		writeJSON(w, map[string]any{
			"object":   "list",
			"data":     s.messages,
			"has_more": false,
		})

	case r.Method == http.MethodPost && r.URL.Path == "/threads/"+fakeThreadID+"/runs":
		s.runsCreated++
		writeJSON(w, azagents.Run{
			ID:          fakeRunID,
			Object:      "thread.run",
			ThreadID:    fakeThreadID,
			AssistantID: fakeAgentID,
			Status:      azagents.RunStatusQueued,
		})

	case r.Method == http.MethodGet && r.URL.Path == "/threads/"+fakeThreadID+"/runs/"+fakeRunID:
		s.getRunCalls++
		if message, ok := s.revealAtPoll[s.getRunCalls]; ok {
			s.messages = append([]azagents.ThreadMessage{message}, s.messages...)
		}
		status := s.nextStatus()
		run := azagents.Run{
			ID:          fakeRunID,
			Object:      "thread.run",
			ThreadID:    fakeThreadID,
			AssistantID: fakeAgentID,
			Status:      status,
		}
		if status == azagents.RunStatusFailed || status == azagents.RunStatusCancelled {
			run.LastError = s.lastError
		}
		if status.IsTerminal() {
			run.Usage = s.usage
		}
		writeJSON(w, run)

	case r.Method == http.MethodGet && r.URL.Path == "/connections":
		writeJSON(w, map[string]any{"value": s.connections})

	default:
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]any{"error": map[string]string{
			"code":    "not_found",
			"message": r.Method + " " + r.URL.Path,
		}})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) {
	_ = json.NewDecoder(r.Body).Decode(v)
}

// testConfig returns a Config that validates and polls fast enough for
// tests. The endpoint is never dialed; the client under test points at the
// fake server.
func testConfig(outputPath string) *Config {
	return &Config{
		Endpoint:                    "https://fake.services.ai.azure.com/api/projects/fake",
		ModelDeployment:             "gpt-4o",
		DeepResearchModelDeployment: "o3-deep-research",
		BingConnectionID:            "conn_bing",
		OutputPath:                  outputPath,
		PollInterval:                time.Millisecond,
	}
}

// finalAgentMessage is a completed research answer with one citation.
func finalAgentMessage() azagents.ThreadMessage {
	return azagents.ThreadMessage{
		ID:       "msg_final",
		Object:   "thread.message",
		ThreadID: fakeThreadID,
		Role:     azagents.MessageRoleAgent,
		RunID:    fakeRunID,
		Content: []azagents.MessageContent{{
			Type: "text",
			Text: &azagents.MessageText{
				Value: "Solar output grew last year 【1†source】.",
				Annotations: []azagents.Annotation{{
					Type:       "url_citation",
					StartIndex: 28,
					EndIndex:   38,
					URLCitation: &azagents.URLCitation{
						URL:   "https://example.com/solar",
						Title: "Solar Report",
					},
				}},
			},
		}},
	}
}

// interimAgentMessage is a progress note the service posts while the run is
// still executing.
func interimAgentMessage(id string) azagents.ThreadMessage {
	return azagents.ThreadMessage{
		ID:       id,
		Object:   "thread.message",
		ThreadID: fakeThreadID,
		Role:     azagents.MessageRoleAgent,
		RunID:    fakeRunID,
		Content: []azagents.MessageContent{{
			Type: "text",
			Text: &azagents.MessageText{Value: "Gathering sources on solar output."},
		}},
	}
}
