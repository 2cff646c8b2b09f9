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

package host

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AvivoB/N8N-nodes/internal/config"
	"github.com/AvivoB/N8N-nodes/internal/permissions"
	"github.com/AvivoB/N8N-nodes/internal/secrets"
	nodeerrors "github.com/AvivoB/N8N-nodes/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Credentials = map[string]map[string]any{
		"typesenseApi": {
			"host":   "${NODERUN_TEST_TS_HOST}",
			"port":   8108,
			"apiKey": "secret:typesense/api_key",
		},
		"googleSearchConsoleOAuth2Api": {
			"accessToken": "ya29.static",
		},
	}
	return cfg
}

func TestStatic_ResolveCredentials(t *testing.T) {
	t.Setenv("NODERUN_TEST_TS_HOST", "search.internal")
	t.Setenv("NODERUN_SECRET_TYPESENSE_API_KEY", "xyz")

	h := NewStatic(testConfig(), secrets.NewResolver(secrets.NewEnvBackend()), nil, nil, nil)

	creds, err := h.ResolveCredentials(context.Background(), "typesenseApi")
	require.NoError(t, err)
	assert.Equal(t, "search.internal", creds.String("host"))
	assert.Equal(t, "8108", creds.String("port"))
	assert.Equal(t, "xyz", creds.String("apiKey"))
	assert.Equal(t, "", creds.String("protocol"))

	_, err = h.ResolveCredentials(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestStatic_ResolveCredentials_MissingSecret(t *testing.T) {
	t.Setenv("NODERUN_TEST_TS_HOST", "search.internal")
	h := NewStatic(testConfig(), secrets.NewResolver(secrets.NewEnvBackend()), nil, nil, nil)

	_, err := h.ResolveCredentials(context.Background(), "typesenseApi")
	assert.ErrorIs(t, err, secrets.ErrSecretNotFound)
}

func TestStatic_ResolveCredentials_SecretNotPermitted(t *testing.T) {
	t.Setenv("NODERUN_TEST_TS_HOST", "search.internal")
	t.Setenv("NODERUN_SECRET_TYPESENSE_API_KEY", "xyz")

	cfg := testConfig()
	cfg.Permissions.Secrets = &permissions.SecretsConfig{Allowed: []string{"gsc/*"}}
	h := NewStatic(cfg, secrets.NewResolver(secrets.NewEnvBackend()), nil, nil, nil)

	_, err := h.ResolveCredentials(context.Background(), "typesenseApi")
	var cfgErr *nodeerrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "typesenseApi.apiKey", cfgErr.Key)
	assert.True(t, permissions.IsPermissionError(err))

	cfg.Permissions.Secrets.Allowed = []string{"typesense/**"}
	creds, err := h.ResolveCredentials(context.Background(), "typesenseApi")
	require.NoError(t, err)
	assert.Equal(t, "xyz", creds.String("apiKey"))
}

func TestStatic_TokenSource(t *testing.T) {
	h := NewStatic(testConfig(), nil, nil, nil, nil)

	ts, err := h.TokenSource(context.Background(), "googleSearchConsoleOAuth2Api")
	require.NoError(t, err)
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "ya29.static", tok.AccessToken)

	again, err := h.TokenSource(context.Background(), "googleSearchConsoleOAuth2Api")
	require.NoError(t, err)
	assert.Equal(t, ts, again)

	_, err = h.TokenSource(context.Background(), "typesenseApi")
	assert.Error(t, err)
}

func TestStatic_TokenSource_RefreshCached(t *testing.T) {
	cfg := testConfig()
	cfg.Credentials["gscRefresh"] = map[string]any{
		"clientId":     "client",
		"clientSecret": "shh",
		"refreshToken": "1//refresh",
		"accessToken":  "ya29.current",
		"tokenUrl":     "http://127.0.0.1:1/token",
	}
	h := NewStatic(cfg, nil, nil, nil, nil)

	ts, err := h.TokenSource(context.Background(), "gscRefresh")
	require.NoError(t, err)
	// The access token has no expiry, so no refresh request is made.
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "ya29.current", tok.AccessToken)

	again, err := h.TokenSource(context.Background(), "gscRefresh")
	require.NoError(t, err)
	assert.Same(t, ts, again)
}

func TestStatic_ResolveParameter(t *testing.T) {
	items := []InputItem{
		{JSON: map[string]any{"collection": "books", "doc": map[string]any{"id": "1"}}},
		{JSON: map[string]any{"collection": "films"}},
	}
	params := map[string]any{
		"resource":         "document",
		"collection":       "=.json.collection",
		"documentId":       "=.json.doc.id",
		"additionalFields": map[string]any{"perPage": 5},
		"broken":           "=.[",
	}
	h := NewStatic(nil, nil, nil, params, items)
	ctx := context.Background()

	v, ok, err := h.ResolveParameter(ctx, "resource", 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "document", v)

	v, _, err = h.ResolveParameter(ctx, "collection", 1)
	require.NoError(t, err)
	assert.Equal(t, "films", v)

	v, _, err = h.ResolveParameter(ctx, "documentId", 0)
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	v, _, err = h.ResolveParameter(ctx, "documentId", 1)
	require.NoError(t, err)
	assert.Nil(t, v)

	// Expressions see the item record, not the bare item JSON.
	h.params["bare"] = "=.collection"
	v, _, err = h.ResolveParameter(ctx, "bare", 0)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, _, err = h.ResolveParameter(ctx, "collection", 5)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, ok, err = h.ResolveParameter(ctx, "unset", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = h.ResolveParameter(ctx, "broken", 0)
	assert.Error(t, err)
}

func TestLoadItems(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "items.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"json":{"id":"1"}},{"id":"2"}]`), 0o600))
	items, err := LoadItems(jsonPath)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].JSON["id"])
	assert.Equal(t, "2", items[1].JSON["id"])

	yamlPath := filepath.Join(dir, "items.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("- siteUrl: example.com\n"), 0o600))
	items, err = LoadItems(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "example.com", items[0].JSON["siteUrl"])

	items, err = LoadItems("")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`[1]`), 0o600))
	_, err = LoadItems(badPath)
	assert.Error(t, err)
}

func TestLoadParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("collection: books\nadditionalFields:\n  perPage: 5\n"), 0o600))

	params, err := LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, "books", params["collection"])
	assert.Equal(t, map[string]any{"perPage": 5}, params["additionalFields"])
}
