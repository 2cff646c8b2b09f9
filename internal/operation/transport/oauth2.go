package transport

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// OAuth2Transport adds a bearer token from a host-owned token source to
// every request. Token refresh is the token source's concern.
type OAuth2Transport struct {
	base        Transport
	tokenSource oauth2.TokenSource
}

// NewOAuth2Transport wraps base with bearer authentication.
func NewOAuth2Transport(base Transport, ts oauth2.TokenSource) *OAuth2Transport {
	return &OAuth2Transport{base: base, tokenSource: ts}
}

// Name returns "oauth2".
func (t *OAuth2Transport) Name() string {
	return "oauth2"
}

// SetRateLimiter configures rate limiting on the wrapped transport.
func (t *OAuth2Transport) SetRateLimiter(limiter RateLimiter) {
	t.base.SetRateLimiter(limiter)
}

// Execute obtains a token and delegates to the wrapped transport.
func (t *OAuth2Transport) Execute(ctx context.Context, req *Request) (*Response, error) {
	if t.tokenSource == nil {
		return nil, &TransportError{Type: ErrorTypeAuth, Message: "no OAuth2 token source"}
	}

	token, err := t.tokenSource.Token()
	if err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeAuth,
			Message: fmt.Sprintf("failed to acquire OAuth2 token: %v", err),
			Cause:   err,
		}
	}

	authed := *req
	authed.Headers = make(map[string]string, len(req.Headers)+1)
	for k, v := range req.Headers {
		authed.Headers[k] = v
	}
	authed.Headers["Authorization"] = token.Type() + " " + token.AccessToken

	return t.base.Execute(ctx, &authed)
}
