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

// Package errors provides the error types shared by the node runtime, the
// integrations and the CLI.
package errors

import stderrors "errors"

// UserVisibleError is implemented by errors whose message is safe to place in
// an output record or print to a terminal.
type UserVisibleError interface {
	error

	// IsUserVisible returns true if this error should be shown to users.
	IsUserVisible() bool

	// UserMessage returns the fixed, human-readable message.
	UserMessage() string

	// Suggestion returns actionable guidance for resolving the error.
	// Returns empty string if no suggestion is available.
	Suggestion() string
}

// ErrorClassifier is implemented by errors that carry a category.
type ErrorClassifier interface {
	error

	// ErrorType returns a string identifying the error category.
	// Examples: "validation", "not_found", "unauthorized"
	ErrorType() string

	// IsRetryable returns true if the operation could succeed if repeated.
	// Nothing in this module retries automatically; callers decide.
	IsRetryable() bool
}

// MessageOf returns the text an output record should carry for err: the
// user message when err (or anything it wraps) is user visible, otherwise
// err.Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var uv UserVisibleError
	if stderrors.As(err, &uv) && uv.IsUserVisible() {
		if msg := uv.UserMessage(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
