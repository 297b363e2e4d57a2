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
	"log/slog"
	"sync"

	"github.com/aifoundry-samples/deepresearch-go/azagents"
)

// Pipeline runs a deep research task end to end: it provisions a session
// for a topic, waits for the run to finish, formats the final agent message
// and writes the report to the configured output path.
type Pipeline struct {
	Client *azagents.Client
	Config *Config
}

// Run executes the pipeline serially, blocking until the run terminates.
// Intermediate agent responses are printed to stdout while waiting. The
// provisioned agent is deleted on the way out, whether or not a stage
// failed; a failed stage leaves no report file behind.
func (p Pipeline) Run(ctx context.Context, topic string) (*Report, error) {
	session, err := StartSession(ctx, p.Client, p.Config, topic)
	if err != nil {
		return nil, err
	}
	defer p.closeSession(ctx, session)

	watcher := &Watcher{
		Client:   p.Client,
		Interval: p.Config.pollInterval(),
		Timeout:  p.Config.Timeout,
		Progress: PrintAgentMessage,
	}
	if _, err = watcher.Wait(ctx, session.ThreadID, session.RunID); err != nil {
		return nil, err
	}

	return p.buildReport(ctx, session.ThreadID)
}

// RunStreamed starts the pipeline in event-driven mode and returns
// immediately. The returned result streams WatchEvents to the caller;
// fetching, formatting and writing happen once the stream reports the run
// completed.
func (p Pipeline) RunStreamed(ctx context.Context, topic string) (*StreamedRunResult, error) {
	session, err := StartSession(ctx, p.Client, p.Config, topic)
	if err != nil {
		return nil, err
	}

	watcher := &Watcher{
		Client:   p.Client,
		Interval: p.Config.pollInterval(),
		Timeout:  p.Config.Timeout,
	}
	return &StreamedRunResult{
		ctx:      ctx,
		pipeline: p,
		session:  session,
		watch:    watcher.Watch(ctx, session.ThreadID, session.RunID),
	}, nil
}

// buildReport is the pipeline tail shared by both modes: fetch the final
// agent message, format it, write the file.
func (p Pipeline) buildReport(ctx context.Context, threadID string) (*Report, error) {
	message, err := FetchFinalMessage(ctx, p.Client, threadID)
	if err != nil {
		return nil, err
	}

	report, err := FormatMessage(message)
	if err != nil {
		return nil, err
	}

	path := p.Config.outputPath()
	if err = report.WriteFile(path); err != nil {
		return nil, err
	}
	Logger().Info("Research report written", slog.String("path", path))
	return report, nil
}

// closeSession deletes the session's agent. Cleanup failures are logged,
// not surfaced: they must not mask the pipeline outcome.
func (p Pipeline) closeSession(ctx context.Context, session *Session) {
	if err := session.Close(context.WithoutCancel(ctx)); err != nil {
		Logger().Warn("Cleanup failed", slog.String("error", err.Error()))
	}
}

// StreamedRunResult is the handle returned by Pipeline.RunStreamed. The
// run keeps polling in the background; consume it with StreamEvents.
type StreamedRunResult struct {
	ctx      context.Context
	pipeline Pipeline
	session  *Session
	watch    *RunWatch

	mu     sync.Mutex
	report *Report
}

// StreamEvents forwards each WatchEvent to fn until the run terminates,
// then fetches the final message, formats it, and writes the report file.
// It returns the first error from the watch, from fn, or from the pipeline
// tail; in every failing case no report file is written. The provisioned
// agent is deleted before StreamEvents returns.
func (r *StreamedRunResult) StreamEvents(fn func(WatchEvent) error) error {
	defer r.pipeline.closeSession(r.ctx, r.session)

	if err := r.watch.StreamEvents(fn); err != nil {
		return err
	}

	report, err := r.pipeline.buildReport(r.ctx, r.session.ThreadID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.report = report
	return nil
}

// Report returns the formatted report once StreamEvents completed
// successfully, or nil before that.
func (r *StreamedRunResult) Report() *Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.report
}

// Cancel stops the background polling. A pending StreamEvents call returns
// with the cancellation error without fetching or writing anything.
func (r *StreamedRunResult) Cancel() {
	r.watch.Cancel()
}

// PrintAgentMessage prints an intermediate agent response to stdout: the
// text blocks, then one line per URL citation. It satisfies ProgressFunc
// and is the printer Pipeline.Run installs.
func PrintAgentMessage(message *azagents.ThreadMessage) {
	fmt.Println("\nAgent response:")
	for _, text := range message.TextContents() {
		fmt.Println(text.Value)
	}
	for _, a := range message.URLCitationAnnotations() {
		title := a.URLCitation.Title
		if title == "" {
			title = a.URLCitation.URL
		}
		fmt.Printf("URL Citation: [%s](%s)\n", title, a.URLCitation.URL)
	}
}
