package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// BuildURL joins a base URL and an endpoint, adding the leading slash the
// endpoint may be missing. Absolute endpoints are returned unchanged.
func BuildURL(baseURL, endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return strings.TrimSuffix(baseURL, "/") + endpoint
}

// EncodeBody marshals a request body. GET and DELETE never carry a body,
// and an empty object is not sent.
func EncodeBody(method string, body any) ([]byte, error) {
	if body == nil || method == http.MethodGet || method == http.MethodDelete {
		return nil, nil
	}
	if m, ok := body.(map[string]any); ok && len(m) == 0 {
		return nil, nil
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return encoded, nil
}

// DecodeBody parses a JSON response body. An empty body decodes to nil.
func DecodeBody(body []byte) (any, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}

	var out any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	return out, nil
}
