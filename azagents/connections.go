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
)

// ListConnections returns the resource connections configured on the
// project. Unlike the Agents endpoints, /connections wraps its results in
// an Azure-style "value" array.
func (c *Client) ListConnections(ctx context.Context) ([]Connection, error) {
	var list struct {
		Value []Connection `json:"value"`
	}
	err := c.do(ctx, http.MethodGet, "/connections", nil, nil, &list)
	if err != nil {
		return nil, err
	}
	return list.Value, nil
}
