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
	"fmt"

	"github.com/aifoundry-samples/deepresearch-go/azagents"
)

// FetchFinalMessage retrieves the last agent message of the thread, the one
// holding the completed research answer. Call it only after the run reached
// the completed status. A completed run whose thread holds no agent message
// is reported as an EmptyTranscriptError.
func FetchFinalMessage(ctx context.Context, client *azagents.Client, threadID string) (*azagents.ThreadMessage, error) {
	message, err := client.GetLastMessageByRole(ctx, threadID, azagents.MessageRoleAgent)
	if err != nil {
		return nil, fmt.Errorf("fetching final agent message: %w", err)
	}
	if message == nil {
		return nil, NewEmptyTranscriptError(threadID)
	}
	return message, nil
}
