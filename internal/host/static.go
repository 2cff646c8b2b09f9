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
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/AvivoB/N8N-nodes/internal/config"
	"github.com/AvivoB/N8N-nodes/internal/jq"
	"github.com/AvivoB/N8N-nodes/internal/permissions"
	"github.com/AvivoB/N8N-nodes/internal/secrets"
	nodeerrors "github.com/AvivoB/N8N-nodes/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Static is a host backed by the config file, the secret backends and a
// fixed parameter map. Parameter values starting with "=" are jq
// expressions evaluated against the current item.
type Static struct {
	cfg     *config.Config
	secrets *secrets.Resolver
	jq      *jq.Executor
	client  *http.Client

	params map[string]any
	items  []InputItem

	mu     sync.Mutex
	tokens map[string]oauth2.TokenSource
}

// NewStatic creates a static host. client is used for OAuth2 token refresh.
func NewStatic(cfg *config.Config, resolver *secrets.Resolver, client *http.Client, params map[string]any, items []InputItem) *Static {
	if cfg == nil {
		cfg = config.Default()
	}
	if resolver == nil {
		resolver = secrets.NewResolver()
	}
	return &Static{
		cfg:     cfg,
		secrets: resolver,
		jq:      jq.NewExecutor(0, 0),
		client:  client,
		params:  params,
		items:   items,
		tokens:  make(map[string]oauth2.TokenSource),
	}
}

// ResolveCredentials returns the configured credential set with secret and
// environment references expanded. Secret references outside the configured
// secrets policy fail with a ConfigError.
func (s *Static) ResolveCredentials(ctx context.Context, name string) (Credentials, error) {
	fields, ok := s.cfg.Credential(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCredentialsNotFound, name)
	}

	creds := make(Credentials, len(fields))
	for k, v := range fields {
		str, isString := v.(string)
		if !isString {
			creds[k] = v
			continue
		}
		if key, isSecret := strings.CutPrefix(str, secrets.SecretPrefix); isSecret {
			if err := permissions.CheckSecret(s.cfg.Permissions.Secrets, key); err != nil {
				return nil, &nodeerrors.ConfigError{
					Key:    name + "." + k,
					Reason: fmt.Sprintf("secret %q is not permitted", key),
					Cause:  err,
				}
			}
		}
		expanded, err := s.secrets.Expand(ctx, str)
		if err != nil {
			return nil, fmt.Errorf("credential %s.%s: %w", name, k, err)
		}
		creds[k] = expanded
	}
	return creds, nil
}

// TokenSource builds a refreshing token source from an OAuth2 credential set
// holding clientId, clientSecret and refreshToken (and optionally accessToken,
// tokenUrl and scope). Sources are cached per credential name.
func (s *Static) TokenSource(ctx context.Context, name string) (oauth2.TokenSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ts, ok := s.tokens[name]; ok {
		return ts, nil
	}

	creds, err := s.ResolveCredentials(ctx, name)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{
		AccessToken:  creds.String("accessToken"),
		RefreshToken: creds.String("refreshToken"),
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, fmt.Errorf("credential %s has neither accessToken nor refreshToken", name)
	}

	var ts oauth2.TokenSource
	if token.RefreshToken == "" {
		ts = oauth2.StaticTokenSource(token)
	} else {
		endpoint := endpoints.Google
		if tokenURL := creds.String("tokenUrl"); tokenURL != "" {
			endpoint.TokenURL = tokenURL
		}
		oc := &oauth2.Config{
			ClientID:     creds.String("clientId"),
			ClientSecret: creds.String("clientSecret"),
			Endpoint:     endpoint,
			Scopes:       strings.Fields(creds.String("scope")),
		}
		// The token source outlives this call; refreshes use the host client.
		refreshCtx := context.Background()
		if s.client != nil {
			refreshCtx = context.WithValue(refreshCtx, oauth2.HTTPClient, s.client)
		}
		ts = oauth2.ReuseTokenSource(nil, oc.TokenSource(refreshCtx, token))
	}

	s.tokens[name] = ts
	return ts, nil
}

// ResolveParameter returns the raw parameter or evaluates it as an expression
// against the item record at itemIndex, so item fields read as .json.<field>.
func (s *Static) ResolveParameter(ctx context.Context, name string, itemIndex int) (any, bool, error) {
	raw, ok := s.params[name]
	if !ok {
		return nil, false, nil
	}

	str, isString := raw.(string)
	if !isString || !jq.IsExpression(str) {
		return raw, true, nil
	}

	item := InputItem{JSON: map[string]any{}}
	if itemIndex >= 0 && itemIndex < len(s.items) {
		item = s.items[itemIndex]
	}

	expr := strings.TrimPrefix(str, jq.ExpressionPrefix)
	value, err := s.jq.Execute(ctx, expr, item)
	if err != nil {
		return nil, false, fmt.Errorf("parameter %s: %w", name, err)
	}
	return value, true, nil
}

func toString(v any) string {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
