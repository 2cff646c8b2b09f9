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

package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const (
	// EnvBackendPriority lets environment variables override stored secrets.
	EnvBackendPriority = 100

	envSecretPrefix = "NODERUN_SECRET_"
)

// EnvBackend reads secrets from NODERUN_SECRET_* environment variables.
type EnvBackend struct {
	lookup func(string) (string, bool)
}

// NewEnvBackend creates a new environment variable backend.
func NewEnvBackend() *EnvBackend {
	return &EnvBackend{lookup: os.LookupEnv}
}

func (e *EnvBackend) Name() string   { return "env" }
func (e *EnvBackend) Available() bool { return true }
func (e *EnvBackend) Priority() int   { return EnvBackendPriority }
func (e *EnvBackend) ReadOnly() bool  { return true }

// Get reads EnvVarName(key). An empty variable counts as unset.
func (e *EnvBackend) Get(ctx context.Context, key string) (string, error) {
	name := EnvVarName(key)
	if value, ok := e.lookup(name); ok && value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%w: %s not set", ErrSecretNotFound, name)
}

// Set always fails: the environment is managed outside noderun.
func (e *EnvBackend) Set(ctx context.Context, key string, value string) error {
	return fmt.Errorf("%w: export %s instead", ErrReadOnlyBackend, EnvVarName(key))
}

// Delete always fails with ErrReadOnlyBackend.
func (e *EnvBackend) Delete(ctx context.Context, key string) error {
	return fmt.Errorf("%w: unset %s instead", ErrReadOnlyBackend, EnvVarName(key))
}

var envKeyReplacer = strings.NewReplacer("/", "_", "-", "_", ".", "_")

// EnvVarName maps a secret key to its variable: "typesense/api_key" becomes
// NODERUN_SECRET_TYPESENSE_API_KEY.
func EnvVarName(key string) string {
	return envSecretPrefix + strings.ToUpper(envKeyReplacer.Replace(key))
}
