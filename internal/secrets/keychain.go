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
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	// KeychainBackendPriority places the keychain after environment variables.
	KeychainBackendPriority = 50

	keychainService = "noderun"
	probeKey        = "__noderun_probe__"
)

// keychainUnavailable holds lowercase fragments of the platform errors for a
// locked or unreachable keyring.
var keychainUnavailable = []string{
	"locked",
	"cannot access",
	"permission denied",
	"failed to unlock",
	"user interaction required",
	"user canceled",
	"secret service",
	"dbus",
}

// KeychainBackend keeps credentials in the OS keyring (macOS Keychain,
// Secret Service on Linux, Windows Credential Manager) under the service
// name "noderun", one entry per key.
type KeychainBackend struct {
	probe func() bool
}

// NewKeychainBackend returns a backend whose availability is probed once, on
// first use.
func NewKeychainBackend() *KeychainBackend {
	return &KeychainBackend{
		probe: sync.OnceValue(func() bool {
			_, err := keyring.Get(keychainService, probeKey)
			return err == nil || errors.Is(err, keyring.ErrNotFound)
		}),
	}
}

func (k *KeychainBackend) Name() string   { return "keychain" }
func (k *KeychainBackend) Priority() int  { return KeychainBackendPriority }
func (k *KeychainBackend) ReadOnly() bool { return false }

// Available reports whether the keyring answered the probe.
func (k *KeychainBackend) Available() bool {
	return k.probe()
}

// Get reads key from the keyring.
func (k *KeychainBackend) Get(ctx context.Context, key string) (string, error) {
	if err := k.ready(); err != nil {
		return "", err
	}
	value, err := keyring.Get(keychainService, key)
	if err != nil {
		return "", classifyKeyringError(key, err)
	}
	return value, nil
}

// Set writes key to the keyring, replacing any previous value.
func (k *KeychainBackend) Set(ctx context.Context, key string, value string) error {
	if err := k.ready(); err != nil {
		return err
	}
	return classifyKeyringError(key, keyring.Set(keychainService, key, value))
}

// Delete removes key from the keyring.
func (k *KeychainBackend) Delete(ctx context.Context, key string) error {
	if err := k.ready(); err != nil {
		return err
	}
	return classifyKeyringError(key, keyring.Delete(keychainService, key))
}

func (k *KeychainBackend) ready() error {
	if !k.Available() {
		return fmt.Errorf("%w: keychain service unavailable", ErrBackendUnavailable)
	}
	return nil
}

func classifyKeyringError(key string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	msg := strings.ToLower(err.Error())
	for _, fragment := range keychainUnavailable {
		if strings.Contains(msg, fragment) {
			return fmt.Errorf("%w: %s", ErrBackendUnavailable, err.Error())
		}
	}
	return fmt.Errorf("keychain error: %w", err)
}
