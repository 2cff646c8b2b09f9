package httpclient

import (
	"net/url"
	"strings"
)

// redactedValue replaces secret query values and userinfo in logged URLs.
const redactedValue = "[REDACTED]"

// sensitiveQueryFragments match query parameter names case-insensitively.
// "key" covers api_key and x-typesense-api-key, "token" covers access_token.
var sensitiveQueryFragments = []string{"key", "token", "secret", "password", "auth", "credential"}

// sanitizeURL renders u for logging with credentials removed.
func sanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	safe := *u
	safe.User = nil
	if safe.RawQuery != "" {
		q := safe.Query()
		for name, values := range q {
			if !isSensitiveParam(name) {
				continue
			}
			for i := range values {
				values[i] = redactedValue
			}
		}
		safe.RawQuery = q.Encode()
	}
	return safe.String()
}

func isSensitiveParam(name string) bool {
	name = strings.ToLower(name)
	for _, fragment := range sensitiveQueryFragments {
		if strings.Contains(name, fragment) {
			return true
		}
	}
	return false
}
