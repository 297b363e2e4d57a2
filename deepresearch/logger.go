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
	"log/slog"
	"os"
	"sync/atomic"
)

var researchLogger atomic.Pointer[slog.Logger]

func init() {
	ResetLogger()
}

// Logger is the global logger used by this package.
// By default it writes text records to stderr with minimum level "info".
// You can change it with SetLogger.
func Logger() *slog.Logger {
	return researchLogger.Load()
}

// SetLogger sets the global logger. A nil value is ignored.
func SetLogger(l *slog.Logger) {
	if l != nil {
		researchLogger.Store(l)
	}
}

func ResetLogger() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	SetLogger(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

// EnableVerboseLogging lowers the global logger's minimum level to debug.
// This is useful for watching the poll loop while debugging.
func EnableVerboseLogging() {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	researchLogger.Store(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}
