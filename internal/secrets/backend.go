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
	"strings"
)

var (
	// ErrSecretNotFound is returned when no backend holds a key.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrBackendUnavailable is returned when a backend cannot be reached, for
	// example a locked keychain or a headless session without Secret Service.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrReadOnlyBackend is returned by Set and Delete on backends that only read.
	ErrReadOnlyBackend = errors.New("backend is read-only")

	// ErrInvalidKey is returned by ValidateKey.
	ErrInvalidKey = errors.New("invalid secret key")
)

// SecretBackend stores credential values by key. Keys are slash separated
// paths such as "typesense/api_key" or "gsc/client_secret".
type SecretBackend interface {
	// Name is the identifier accepted by --backend ("env", "keychain").
	Name() string

	// Get returns ErrSecretNotFound when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error

	// Delete returns ErrSecretNotFound when key is absent.
	Delete(ctx context.Context, key string) error

	// Available reports whether the backend works in this environment.
	// Unavailable backends are dropped by NewResolver.
	Available() bool

	// Priority orders lookups. Higher values are asked first.
	Priority() int

	// ReadOnly backends are skipped when choosing where to write.
	ReadOnly() bool
}

// ValidateKey rejects keys that cannot round-trip through every backend and
// through a "secret:<key>" config reference.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	case strings.ContainsAny(key, " \t\r\n"):
		return fmt.Errorf("%w: key cannot contain whitespace", ErrInvalidKey)
	case strings.Contains(key, `\`):
		return fmt.Errorf(`%w: use forward slashes (/), not backslashes (\)`, ErrInvalidKey)
	case strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/"):
		return fmt.Errorf("%w: key cannot start or end with /", ErrInvalidKey)
	}
	return nil
}
