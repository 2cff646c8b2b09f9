// Package transport executes the single HTTP exchange behind each node request.
package transport

import (
	"context"
)

// Transport sends requests to a remote API.
//
// Implementations never retry: one Execute call is one HTTP exchange.
type Transport interface {
	// Execute sends a request and returns a response.
	// Returns *TransportError on failure, including non-2xx statuses.
	Execute(ctx context.Context, req *Request) (*Response, error)

	// Name returns the transport identifier ("http", "oauth2").
	Name() string

	// SetRateLimiter configures rate limiting for this transport.
	// A nil limiter disables limiting.
	SetRateLimiter(limiter RateLimiter)
}

// Request is one outbound HTTP request.
type Request struct {
	// Method is the HTTP method. Required.
	Method string

	// URL is the absolute request URL, possibly already carrying a query.
	URL string

	// Headers are request headers.
	Headers map[string]string

	// Query is merged into the URL's existing query string.
	Query map[string]string

	// Body is the encoded request body. Nil sends no body.
	Body []byte
}

// Response is the result of a successful exchange.
type Response struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Headers contains response headers
	Headers map[string][]string

	// Body is the response body
	Body []byte

	// Metadata carries transport details such as the service request id.
	Metadata map[string]any
}

// MetadataRequestID is the service request ID, when the API returns one.
const MetadataRequestID = "request_id"

// RateLimiter blocks until a request may proceed.
type RateLimiter interface {
	// Wait returns an error if ctx ends before the request is allowed.
	Wait(ctx context.Context) error
}
