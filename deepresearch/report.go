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
)

// Markdown renders the report document: the body followed by a numbered
// "## References" section. The section is omitted entirely when the message
// carried no citations, so an annotation-free answer round-trips verbatim.
func (r *Report) Markdown() string {
	if len(r.Citations) == 0 {
		return r.Body
	}

	var sb strings.Builder
	sb.WriteString(r.Body)
	sb.WriteString("\n\n## References\n")
	for _, c := range r.Citations {
		title := c.Title
		if title == "" {
			title = c.URL
		}
		fmt.Fprintf(&sb, "%d. %s - %s\n", c.Index, title, c.URL)
	}
	return sb.String()
}

// WriteFile persists the rendered Markdown to path, creating the file or
// truncating a previous report. Every failure, including a failed close,
// surfaces as a WriteError.
func (r *Report) WriteFile(path string) (err error) {
	defer func() {
		if err != nil {
			err = NewWriteError(path, err)
		}
	}()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	_, err = f.WriteString(r.Markdown())
	return err
}
