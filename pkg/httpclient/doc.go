// Package httpclient builds the *http.Client the host hands to node transports.
//
// # Usage
//
//	cfg := httpclient.DefaultConfig()
//	cfg.UserAgent = "noderun/1.0"
//	client, err := httpclient.New(cfg)
//	if err != nil {
//	    return err
//	}
//
// The client never retries. A node issues exactly one HTTP exchange per
// request it builds, so status codes reach the node's error mapping unchanged.
//
// # Security
//
//   - Sensitive query parameters (api_key, token, password, etc.) are redacted from logs
//   - Request headers are never logged, so X-TYPESENSE-API-KEY and Authorization stay out of logs
//   - TLS 1.2 minimum with certificate validation enabled
//
// # Observability
//
// All requests emit structured logs via log/slog:
//   - Debug level: requests that completed with a status below 400
//   - Warn level: 4xx/5xx responses and transport failures
//   - Fields: method, url (sanitized), status, duration_ms, error
package httpclient
