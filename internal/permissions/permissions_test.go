package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckNetwork(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *NetworkConfig
		host      string
		wantError string
	}{
		{
			name: "nil policy allows everything",
			host: "169.254.169.254",
		},
		{
			name: "empty allow list allows public hosts",
			cfg:  &NetworkConfig{},
			host: "searchconsole.googleapis.com:443",
		},
		{
			name:      "metadata endpoint blocked by default",
			cfg:       &NetworkConfig{},
			host:      "169.254.169.254:80",
			wantError: "network.blocked",
		},
		{
			name: "exact allowed host",
			cfg:  &NetworkConfig{AllowedHosts: []string{"search.internal"}},
			host: "search.internal:8108",
		},
		{
			name: "wildcard spans labels",
			cfg:  &NetworkConfig{AllowedHosts: []string{"*.googleapis.com"}},
			host: "www.oauth2.googleapis.com",
		},
		{
			name: "cidr allows literal ip",
			cfg:  &NetworkConfig{AllowedHosts: []string{"127.0.0.0/8"}},
			host: "127.0.0.1:52101",
		},
		{
			name: "ipv6 with port",
			cfg:  &NetworkConfig{AllowedHosts: []string{"::1/128"}},
			host: "[::1]:8108",
		},
		{
			name:      "host outside allow list",
			cfg:       &NetworkConfig{AllowedHosts: []string{"*.googleapis.com"}},
			host:      "evil.example.com",
			wantError: "network.host_denied",
		},
		{
			name: "blocked wins over allowed",
			cfg: &NetworkConfig{
				AllowedHosts: []string{"*.internal"},
				BlockedHosts: []string{"admin.internal"},
			},
			host:      "admin.internal",
			wantError: "network.blocked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNetwork(tt.cfg, tt.host)
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			var pe *PermissionError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.wantError, pe.Type)
		})
	}
}

func TestHostPolicy(t *testing.T) {
	assert.Nil(t, HostPolicy(nil))

	check := HostPolicy(&NetworkConfig{AllowedHosts: []string{"search.internal"}})
	require.NotNil(t, check)
	assert.NoError(t, check("search.internal:443"))
	assert.True(t, IsPermissionError(check("other.internal")))
}

func TestCheckSecret(t *testing.T) {
	assert.NoError(t, CheckSecret(nil, "anything"))

	err := CheckSecret(&SecretsConfig{}, "typesense/api_key")
	var pe *PermissionError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), "allowed patterns: none")

	cfg := &SecretsConfig{Allowed: []string{"typesense/**", "gsc/client_secret"}}
	assert.NoError(t, CheckSecret(cfg, "typesense/prod/api_key"))
	assert.NoError(t, CheckSecret(cfg, "gsc/client_secret"))

	err = CheckSecret(cfg, "gsc/refresh_token")
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "gsc/refresh_token", pe.Resource)
	assert.Equal(t, "Access to gsc/refresh_token is not permitted", pe.UserMessage())
	assert.Contains(t, pe.Suggestion(), "permissions.secrets.allowed")
}

func TestConfigValidate(t *testing.T) {
	var nilCfg *Config
	assert.NoError(t, nilCfg.Validate())

	assert.NoError(t, (&Config{
		Network: &NetworkConfig{AllowedHosts: []string{"*.googleapis.com", "10.0.0.0/8"}},
		Secrets: &SecretsConfig{Allowed: []string{"typesense/*"}},
	}).Validate())

	err := (&Config{Secrets: &SecretsConfig{Allowed: []string{"typesense/[unclosed"}}}).Validate()
	assert.ErrorContains(t, err, "permissions.secrets.allowed")
}
