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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportMarkdown(t *testing.T) {
	report := &Report{
		Body: "Findings [1] and [2].",
		Citations: []Citation{
			{Index: 1, URL: "https://a.example", Title: "A Example"},
			{Index: 2, URL: "https://b.example"},
		},
	}

	assert.Equal(t,
		"Findings [1] and [2].\n\n## References\n"+
			"1. A Example - https://a.example\n"+
			"2. https://b.example - https://b.example\n",
		report.Markdown())
}

func TestReportMarkdownWithoutCitations(t *testing.T) {
	report := &Report{Body: "Just an answer."}
	assert.Equal(t, "Just an answer.", report.Markdown())
}

func TestReportWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "research_summary.md")
	report := &Report{
		Body:      "Findings [1].",
		Citations: []Citation{{Index: 1, URL: "https://a.example", Title: "A"}},
	}

	require.NoError(t, report.WriteFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, report.Markdown(), string(content))
}

func TestReportWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "research_summary.md")

	longer := &Report{Body: "A much longer report from a previous invocation."}
	require.NoError(t, longer.WriteFile(path))

	shorter := &Report{Body: "Short."}
	require.NoError(t, shorter.WriteFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Short.", string(content))
}

func TestReportWriteFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "research_summary.md")
	report := &Report{Body: "Anything."}

	err := report.WriteFile(path)

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, path, writeErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
