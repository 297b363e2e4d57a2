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

// Package azagents is a minimal REST client for the Azure AI Foundry Agents
// API, covering the operations a Deep Research task needs: agent and thread
// management, message retrieval, run polling, and project connection lookup.
package azagents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/google/uuid"
)

// DefaultAPIVersion is the Agents API version requested when ClientOptions
// does not override it.
const DefaultAPIVersion = "2025-05-15-preview"

// defaultScope is the OAuth2 scope for Azure AI Foundry resources.
const defaultScope = "https://ai.azure.com/.default"

// Client talks to one Azure AI Foundry project. The endpoint is the project
// endpoint, e.g. https://my-resource.services.ai.azure.com/api/projects/my-project.
type Client struct {
	endpoint   string
	apiVersion string
	scope      string
	cred       azcore.TokenCredential
	httpClient *http.Client
}

// ClientOptions are optional settings for NewClient.
type ClientOptions struct {
	// APIVersion overrides DefaultAPIVersion.
	APIVersion string
	// Scope overrides the default Azure AI Foundry token scope.
	Scope string
	// HTTPClient overrides http.DefaultClient.
	HTTPClient *http.Client
}

// NewClient creates a Client authenticating each request with a bearer
// token obtained from credential.
func NewClient(endpoint string, credential azcore.TokenCredential, opts *ClientOptions) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("azagents: endpoint is required")
	}
	if credential == nil {
		return nil, errors.New("azagents: credential is required")
	}
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiVersion: DefaultAPIVersion,
		scope:      defaultScope,
		cred:       credential,
		httpClient: http.DefaultClient,
	}
	if opts != nil {
		if opts.APIVersion != "" {
			c.apiVersion = opts.APIVersion
		}
		if opts.Scope != "" {
			c.scope = opts.Scope
		}
		if opts.HTTPClient != nil {
			c.httpClient = opts.HTTPClient
		}
	}
	return c, nil
}

// Endpoint returns the project endpoint the client was created with.
func (c *Client) Endpoint() string { return c.endpoint }

// APIError is the error payload the service returns for non-2xx responses.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("azagents: %s (http %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("azagents: http %d: %s", e.StatusCode, e.Message)
}

func newAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("apim-request-id"),
	}

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	raw, err := io.ReadAll(resp.Body)
	if err == nil && json.Unmarshal(raw, &payload) == nil && payload.Error.Message != "" {
		apiErr.Code = payload.Error.Code
		apiErr.Message = payload.Error.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

// do sends one request. path is relative to the project endpoint; body, when
// non-nil, is JSON-encoded; out, when non-nil, receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api-version", c.apiVersion)
	u := c.endpoint + path + "?" + q.Encode()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("azagents: encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("x-ms-client-request-id", uuid.NewString())

	token, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{c.scope}})
	if err != nil {
		return fmt.Errorf("azagents: acquiring token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("azagents: decoding response: %w", err)
	}
	return nil
}
