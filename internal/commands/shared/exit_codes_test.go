// Copyright 2025 Tom Barlow
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

package shared

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/AvivoB/N8N-nodes/internal/operation"
	pkgerrors "github.com/AvivoB/N8N-nodes/pkg/errors"
)

// mockUserVisibleError is a test implementation of UserVisibleError
type mockUserVisibleError struct {
	message    string
	suggestion string
	visible    bool
}

func (e *mockUserVisibleError) Error() string       { return e.message }
func (e *mockUserVisibleError) IsUserVisible() bool { return e.visible }
func (e *mockUserVisibleError) UserMessage() string { return e.message }
func (e *mockUserVisibleError) Suggestion() string  { return e.suggestion }

func TestExitCodeFor(t *testing.T) {
	notFound := &operation.Error{
		Type:       operation.ErrorTypeNotFound,
		Message:    "Not Found - Collection or document does not exist",
		StatusCode: 404,
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitExecutionFailed},
		{"validation", &pkgerrors.ValidationError{Field: "startDate", Message: "bad"}, ExitInvalidInput},
		{"config", &pkgerrors.ConfigError{Key: "typesenseApi", Reason: "missing"}, ExitConfigError},
		{"remote", notFound, ExitRemoteError},
		{"wrapped remote", fmt.Errorf("item 0: %w", notFound), ExitRemoteError},
		{"explicit exit code", NewConfigError("bad config", errors.New("x")), ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewExecutionError(t *testing.T) {
	err := NewExecutionError("node run failed", &pkgerrors.ValidationError{Field: "fields", Message: "bad"})
	if err.Code != ExitInvalidInput {
		t.Errorf("expected code %d, got %d", ExitInvalidInput, err.Code)
	}
	if !strings.HasPrefix(err.Error(), "node run failed: ") {
		t.Errorf("unexpected message %q", err.Error())
	}

	if NewExecutionError("failed", nil).Code != ExitExecutionFailed {
		t.Error("expected a nil cause to map to execution failed")
	}
}

func TestReportError_PrintsSuggestion(t *testing.T) {
	inner := &mockUserVisibleError{
		message:    "Unauthorized - Check your API key",
		suggestion: "Check the apiKey of the typesenseApi credential",
		visible:    true,
	}

	var buf bytes.Buffer
	code := reportError(&buf, fmt.Errorf("item 2: %w", inner))

	if code != ExitExecutionFailed {
		t.Errorf("expected code %d, got %d", ExitExecutionFailed, code)
	}
	out := buf.String()
	if !strings.Contains(out, "item 2: Unauthorized - Check your API key") {
		t.Errorf("expected error text in output, got: %s", out)
	}
	if !strings.Contains(out, "Check the apiKey of the typesenseApi credential") {
		t.Errorf("expected suggestion in output, got: %s", out)
	}
}

func TestReportError_HiddenSuggestion(t *testing.T) {
	inner := &mockUserVisibleError{message: "internal", suggestion: "should not print", visible: false}

	var buf bytes.Buffer
	reportError(&buf, inner)

	if strings.Contains(buf.String(), "should not print") {
		t.Errorf("suggestion of a non-visible error was printed: %s", buf.String())
	}
}
