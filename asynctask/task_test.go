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

package asynctask

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskAwait(t *testing.T) {
	task := Start(t.Context(), func(context.Context) (int, error) {
		return 42, nil
	})

	res := task.Await()
	assert.NoError(t, res.Error)
	assert.Equal(t, 42, res.Value)
	assert.True(t, task.IsDone())
	assert.False(t, task.IsCanceled())
}

func TestTaskError(t *testing.T) {
	wantErr := errors.New("boom")
	task := Start(t.Context(), func(context.Context) (string, error) {
		return "", wantErr
	})

	res := task.Await()
	assert.ErrorIs(t, res.Error, wantErr)
}

func TestTaskPanic(t *testing.T) {
	task := Start(t.Context(), func(context.Context) (int, error) {
		panic("oh no")
	})

	res := task.Await()
	require.Error(t, res.Error)
	assert.ErrorContains(t, res.Error, "task panicked: oh no")
}

func TestTaskCancel(t *testing.T) {
	started := make(chan struct{})
	task := Start(t.Context(), func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	})

	<-started
	task.Cancel()

	res := task.Await()
	assert.True(t, task.IsCanceled())
	assert.ErrorIs(t, res.Error, ErrCanceled)
	assert.ErrorIs(t, res.Error, context.Canceled)
}

func TestTaskCancelAfterDoneIsNoop(t *testing.T) {
	task := Start(t.Context(), func(context.Context) (int, error) {
		return 1, nil
	})

	res := task.Await()
	require.NoError(t, res.Error)

	task.Cancel()
	assert.False(t, task.IsCanceled())
	assert.NoError(t, task.Await().Error)
}

func TestTaskNoValue(t *testing.T) {
	ran := false
	task := StartNoValue(t.Context(), func(context.Context) error {
		ran = true
		return nil
	})

	res := task.Await()
	assert.NoError(t, res.Error)
	assert.True(t, ran)
}

func TestTaskDoneChannel(t *testing.T) {
	release := make(chan struct{})
	task := Start(t.Context(), func(context.Context) (int, error) {
		<-release
		return 5, nil
	})

	select {
	case <-task.Done():
		t.Fatal("task reported done while still running")
	case <-time.After(20 * time.Millisecond):
	}
	assert.False(t, task.IsDone())

	close(release)

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task never completed")
	}
	assert.Equal(t, 5, task.Await().Value)
}
