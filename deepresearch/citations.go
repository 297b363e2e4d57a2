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
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/aifoundry-samples/deepresearch-go/azagents"
)

// Citation is one deduplicated reference derived from the url_citation
// annotations of the final agent message.
type Citation struct {
	// Index is the 1-based reference number, assigned in first-appearance
	// order of the URL across the whole message.
	Index int

	// URL of the cited source.
	URL string

	// Title of the cited source. May be empty; rendering falls back to the
	// URL.
	Title string
}

// Report is the formatted research result: the agent's answer with citation
// markers spliced in, and the references they point to.
type Report struct {
	// Body is the message text with every citation span replaced by its
	// [n] marker. Blocks are trimmed and joined with a blank line.
	Body string

	// Citations lists the references in index order. Empty when the
	// message carried no url_citation annotations.
	Citations []Citation
}

// FormatMessage turns the final agent message into a Report.
//
// Within each text block, url_citation annotations are applied left to
// right by span start. Each span is replaced by a [n] marker, where n is
// the 1-based index of the annotation's URL in first-appearance order
// across the whole message; a URL seen before reuses its index. Span
// offsets count runes. Out-of-range, inverted, or overlapping spans abort
// with an InvalidAnnotationError. A message without annotations passes its
// text through unchanged, with an empty citation list.
//
// The result is deterministic: the same message always yields the same
// marker placement and index assignment.
func FormatMessage(message *azagents.ThreadMessage) (*Report, error) {
	f := &formatter{indexByURL: make(map[string]int)}

	texts := message.TextContents()
	blocks := make([]string, 0, len(texts))
	for _, text := range texts {
		rewritten, err := f.rewriteBlock(text)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, strings.TrimSpace(rewritten))
	}

	return &Report{
		Body:      strings.Join(blocks, "\n\n"),
		Citations: f.citations,
	}, nil
}

// formatter assigns citation indexes across all blocks of one message.
type formatter struct {
	indexByURL map[string]int
	citations  []Citation
}

// rewriteBlock replaces every url_citation span of one text block with its
// marker. Markers are spliced before trimming, so span offsets keep
// referring to the text the service measured them against.
func (f *formatter) rewriteBlock(text azagents.MessageText) (string, error) {
	annotations := make([]azagents.Annotation, 0, len(text.Annotations))
	for _, a := range text.Annotations {
		if a.Type == "url_citation" && a.URLCitation != nil {
			annotations = append(annotations, a)
		}
	}
	if len(annotations) == 0 {
		return text.Value, nil
	}

	slices.SortStableFunc(annotations, func(a, b azagents.Annotation) int {
		return cmp.Compare(a.StartIndex, b.StartIndex)
	})

	runes := []rune(text.Value)
	var sb strings.Builder
	cursor := 0
	for _, a := range annotations {
		switch {
		case a.StartIndex < 0 || a.EndIndex > len(runes):
			return "", NewInvalidAnnotationError("span out of range", a.StartIndex, a.EndIndex)
		case a.EndIndex < a.StartIndex:
			return "", NewInvalidAnnotationError("span end precedes start", a.StartIndex, a.EndIndex)
		case a.StartIndex < cursor:
			return "", NewInvalidAnnotationError("span overlaps a previous annotation", a.StartIndex, a.EndIndex)
		}

		sb.WriteString(string(runes[cursor:a.StartIndex]))
		fmt.Fprintf(&sb, "[%d]", f.indexFor(a.URLCitation))
		cursor = a.EndIndex
	}
	sb.WriteString(string(runes[cursor:]))
	return sb.String(), nil
}

// indexFor returns the reference index for a URL, allocating the next one
// on first appearance. The first annotation's title sticks.
func (f *formatter) indexFor(citation *azagents.URLCitation) int {
	if index, ok := f.indexByURL[citation.URL]; ok {
		return index
	}
	index := len(f.citations) + 1
	f.indexByURL[citation.URL] = index
	f.citations = append(f.citations, Citation{
		Index: index,
		URL:   citation.URL,
		Title: citation.Title,
	})
	return index
}
