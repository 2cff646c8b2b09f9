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

// Package host defines what a node may ask of the runtime that runs it, and
// provides the static host the CLI uses.
package host

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/oauth2"
)

// ErrCredentialsNotFound is returned when no credential set is configured under a name.
var ErrCredentialsNotFound = errors.New("credentials not found")

// Credentials is a resolved credential set. Field names follow the
// credential descriptor (host, port, protocol, apiKey, ...).
type Credentials map[string]any

// String returns a field as a string, or "" when missing.
func (c Credentials) String(key string) string {
	switch v := c[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return toString(v)
	}
}

// CredentialResolver supplies credential sets by type name.
type CredentialResolver interface {
	// ResolveCredentials returns ErrCredentialsNotFound if nothing is configured.
	ResolveCredentials(ctx context.Context, name string) (Credentials, error)
}

// TokenSourceProvider supplies OAuth2 token sources. Refreshing tokens is
// the provider's job.
type TokenSourceProvider interface {
	TokenSource(ctx context.Context, name string) (oauth2.TokenSource, error)
}

// ParameterResolver supplies the value of a named parameter for one item.
type ParameterResolver interface {
	// ResolveParameter reports ok=false when the parameter was not set,
	// in which case the node falls back to the declared default.
	ResolveParameter(ctx context.Context, name string, itemIndex int) (value any, ok bool, err error)
}

// InputItem is one record handed to a node.
type InputItem struct {
	JSON map[string]any `json:"json"`
}

// OutputItem is one record produced by a node. PairedItem is set only on
// error records and holds the failing input's index.
type OutputItem struct {
	JSON       any  `json:"json"`
	PairedItem *int `json:"pairedItem,omitempty"`
}

// Execution is everything a node run can see.
type Execution struct {
	// RunID identifies the run in logs and spans
	RunID string

	// Items are the input records
	Items []InputItem

	Credentials CredentialResolver
	Tokens      TokenSourceProvider
	Parameters  ParameterResolver

	// ContinueOnFail turns per-item errors into error records
	ContinueOnFail bool

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Log returns the execution logger.
func (e *Execution) Log() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}
