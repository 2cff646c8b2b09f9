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

package errors

import (
	"fmt"
)

// ValidationError represents a node parameter or payload that was rejected
// before any request left the process (malformed date, bad collection schema,
// unparseable JSON blob, unknown operation).
type ValidationError struct {
	// Field identifies which parameter failed validation
	Field string

	// Message is the human-readable error description
	Message string

	// SuggestText provides actionable guidance for fixing the error.
	// Named to avoid clashing with the Suggestion method.
	SuggestText string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// IsUserVisible implements UserVisibleError.
func (e *ValidationError) IsUserVisible() bool {
	return true
}

// UserMessage implements UserVisibleError.
func (e *ValidationError) UserMessage() string {
	return e.Message
}

// Suggestion implements UserVisibleError.
func (e *ValidationError) Suggestion() string {
	return e.SuggestText
}

// ConfigError represents missing or unusable configuration, most commonly a
// credential set the host could not resolve.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "typesenseApi", "http.timeout")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// IsUserVisible implements UserVisibleError.
func (e *ConfigError) IsUserVisible() bool {
	return true
}

// UserMessage implements UserVisibleError.
func (e *ConfigError) UserMessage() string {
	return e.Reason
}

// Suggestion implements UserVisibleError.
func (e *ConfigError) Suggestion() string {
	if e.Key != "" {
		return fmt.Sprintf("Configure %q in the credentials section of the config file", e.Key)
	}
	return ""
}
