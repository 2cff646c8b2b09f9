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
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// SecretPrefix marks a config value as a reference to a stored secret.
const SecretPrefix = "secret:"

var envRefPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// Resolver queries SecretBackends in priority order.
type Resolver struct {
	backends []SecretBackend
}

// NewResolver creates a resolver over the available backends, highest priority first.
func NewResolver(backends ...SecretBackend) *Resolver {
	available := make([]SecretBackend, 0, len(backends))
	for _, b := range backends {
		if b.Available() {
			available = append(available, b)
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].Priority() > available[j].Priority()
	})

	return &Resolver{backends: available}
}

// NewDefaultResolver returns the env and keychain chain used by the CLI.
func NewDefaultResolver() *Resolver {
	return NewResolver(NewEnvBackend(), NewKeychainBackend())
}

// Get returns the first value any backend holds for key.
func (r *Resolver) Get(ctx context.Context, key string) (string, error) {
	if len(r.backends) == 0 {
		return "", fmt.Errorf("%w: no available backends", ErrBackendUnavailable)
	}

	var lastErr error
	for _, backend := range r.backends {
		value, err := backend.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, ErrSecretNotFound) {
			lastErr = err
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("failed to get secret %q: %w", key, lastErr)
	}
	return "", fmt.Errorf("%w: %q", ErrSecretNotFound, key)
}

// Set stores a secret in the named backend, or the first writable one when
// backendName is empty.
func (r *Resolver) Set(ctx context.Context, key, value, backendName string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	backend, err := r.writable(backendName)
	if err != nil {
		return err
	}
	if err := backend.Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to set secret in %s: %w", backend.Name(), err)
	}
	return nil
}

// Delete removes a secret from the named backend, or the first writable one
// when backendName is empty.
func (r *Resolver) Delete(ctx context.Context, key, backendName string) error {
	backend, err := r.writable(backendName)
	if err != nil {
		return err
	}
	if err := backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete secret from %s: %w", backend.Name(), err)
	}
	return nil
}

func (r *Resolver) writable(name string) (SecretBackend, error) {
	for _, backend := range r.backends {
		if name != "" && backend.Name() != name {
			continue
		}
		if backend.ReadOnly() {
			if name != "" {
				return nil, fmt.Errorf("backend %q: %w", name, ErrReadOnlyBackend)
			}
			continue
		}
		return backend, nil
	}
	if name != "" {
		return nil, fmt.Errorf("backend %q not found or unavailable", name)
	}
	return nil, fmt.Errorf("%w: no writable backend", ErrBackendUnavailable)
}

// Expand resolves a config value that may be a secret or environment reference.
func (r *Resolver) Expand(ctx context.Context, raw string) (string, error) {
	if key, ok := strings.CutPrefix(raw, SecretPrefix); ok {
		return r.Get(ctx, key)
	}
	if m := envRefPattern.FindStringSubmatch(raw); m != nil {
		value, ok := os.LookupEnv(m[1])
		if !ok {
			return "", fmt.Errorf("%w: environment variable %s not set", ErrSecretNotFound, m[1])
		}
		return value, nil
	}
	return raw, nil
}
