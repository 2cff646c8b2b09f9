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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

// memBackend is an in-memory writable backend for resolver tests.
type memBackend struct {
	name     string
	priority int
	values   map[string]string
}

func newMemBackend(name string, priority int) *memBackend {
	return &memBackend{name: name, priority: priority, values: map[string]string{}}
}

func (m *memBackend) Name() string    { return m.name }
func (m *memBackend) Available() bool { return true }
func (m *memBackend) Priority() int   { return m.priority }
func (m *memBackend) ReadOnly() bool  { return false }

func (m *memBackend) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", ErrSecretNotFound
	}
	return v, nil
}

func (m *memBackend) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memBackend) Delete(_ context.Context, key string) error {
	if _, ok := m.values[key]; !ok {
		return ErrSecretNotFound
	}
	delete(m.values, key)
	return nil
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"typesense/api_key", "gsc/client_secret", "token"} {
		assert.NoError(t, ValidateKey(key), key)
	}
	for _, key := range []string{"", "has space", `back\slash`, "/leading", "trailing/"} {
		assert.ErrorIs(t, ValidateKey(key), ErrInvalidKey, key)
	}
}

func TestEnvVarName(t *testing.T) {
	assert.Equal(t, "NODERUN_SECRET_TYPESENSE_API_KEY", EnvVarName("typesense/api_key"))
	assert.Equal(t, "NODERUN_SECRET_GSC_CLIENT_SECRET", EnvVarName("gsc/client-secret"))
}

func TestEnvBackend(t *testing.T) {
	t.Setenv("NODERUN_SECRET_TYPESENSE_API_KEY", "xyz")
	backend := NewEnvBackend()
	ctx := context.Background()

	v, err := backend.Get(ctx, "typesense/api_key")
	require.NoError(t, err)
	assert.Equal(t, "xyz", v)

	_, err = backend.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	assert.ErrorIs(t, backend.Set(ctx, "k", "v"), ErrReadOnlyBackend)
	assert.ErrorIs(t, backend.Delete(ctx, "k"), ErrReadOnlyBackend)
	assert.True(t, backend.ReadOnly())
}

func TestKeychainBackend_Mock(t *testing.T) {
	keyring.MockInit()
	backend := NewKeychainBackend()
	require.True(t, backend.Available())
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "typesense/api_key", "stored"))
	v, err := backend.Get(ctx, "typesense/api_key")
	require.NoError(t, err)
	assert.Equal(t, "stored", v)

	require.NoError(t, backend.Delete(ctx, "typesense/api_key"))
	_, err = backend.Get(ctx, "typesense/api_key")
	assert.ErrorIs(t, err, ErrSecretNotFound)
	assert.ErrorIs(t, backend.Delete(ctx, "typesense/api_key"), ErrSecretNotFound)
}

func TestResolver_PriorityOrder(t *testing.T) {
	low := newMemBackend("low", 10)
	high := newMemBackend("high", 90)
	low.values["k"] = "from-low"
	high.values["k"] = "from-high"
	low.values["only-low"] = "low-value"

	r := NewResolver(low, high)
	ctx := context.Background()

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "from-high", v)

	v, err = r.Get(ctx, "only-low")
	require.NoError(t, err)
	assert.Equal(t, "low-value", v)

	_, err = r.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestResolver_SetSkipsReadOnly(t *testing.T) {
	mem := newMemBackend("keychain", 50)
	r := NewResolver(NewEnvBackend(), mem)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "v", ""))
	assert.Equal(t, "v", mem.values["k"])

	assert.ErrorIs(t, r.Set(ctx, "k", "v", "env"), ErrReadOnlyBackend)
	assert.Error(t, r.Set(ctx, "k", "v", "vault"))

	require.NoError(t, r.Delete(ctx, "k", ""))
	assert.ErrorIs(t, r.Delete(ctx, "k", "keychain"), ErrSecretNotFound)
}

func TestResolver_Expand(t *testing.T) {
	mem := newMemBackend("keychain", 50)
	mem.values["typesense/api_key"] = "abc"
	t.Setenv("TS_HOST", "search.internal")
	r := NewResolver(mem)
	ctx := context.Background()

	v, err := r.Expand(ctx, "secret:typesense/api_key")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	v, err = r.Expand(ctx, "${TS_HOST}")
	require.NoError(t, err)
	assert.Equal(t, "search.internal", v)

	v, err = r.Expand(ctx, "plain ${NOT_EXPANDED} text")
	require.NoError(t, err)
	assert.Equal(t, "plain ${NOT_EXPANDED} text", v)

	_, err = r.Expand(ctx, "${NODERUN_TEST_UNSET_VARIABLE}")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	_, err = NewResolver().Get(ctx, "k")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
