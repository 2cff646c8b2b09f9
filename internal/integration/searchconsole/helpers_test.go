package searchconsole

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/AvivoB/N8N-nodes/internal/host"
	"github.com/AvivoB/N8N-nodes/internal/operation"
	"github.com/AvivoB/N8N-nodes/internal/operation/transport"
)

// mockTransport records requests and replays responses in order. The last
// response repeats once the list is exhausted.
type mockTransport struct {
	requests    []*transport.Request
	responses   []*transport.Response
	err         error
	rateLimiter transport.RateLimiter
}

func (m *mockTransport) Execute(_ context.Context, req *transport.Request) (*transport.Response, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return &transport.Response{StatusCode: http.StatusOK}, nil
	}
	i := len(m.requests) - 1
	if i >= len(m.responses) {
		i = len(m.responses) - 1
	}
	return m.responses[i], nil
}

func (m *mockTransport) Name() string { return "mock" }

func (m *mockTransport) SetRateLimiter(limiter transport.RateLimiter) { m.rateLimiter = limiter }

func (m *mockTransport) lastRequest() *transport.Request {
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

func jsonResponse(body string) *transport.Response {
	return &transport.Response{StatusCode: http.StatusOK, Body: []byte(body)}
}

type staticParams map[string]any

func (p staticParams) ResolveParameter(_ context.Context, name string, _ int) (any, bool, error) {
	v, ok := p[name]
	return v, ok, nil
}

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) TokenSource(_ context.Context, name string) (oauth2.TokenSource, error) {
	if s.err != nil {
		return nil, s.err
	}
	if name != CredentialName {
		return nil, host.ErrCredentialsNotFound
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.token}), nil
}

func newTestNode(t transport.Transport) *Node {
	n, err := NewNode(&Config{Transport: t})
	if err != nil {
		panic(err)
	}
	return n
}

func newExecution(params staticParams, items int) *host.Execution {
	exec := &host.Execution{
		RunID:      "test-run",
		Tokens:     staticTokens{token: "ya29.test"},
		Parameters: params,
	}
	for range items {
		exec.Items = append(exec.Items, host.InputItem{JSON: map[string]any{}})
	}
	return exec
}

func newCall(exec *host.Execution, resource, op string) *operation.Call {
	return &operation.Call{
		Resource:  resource,
		Operation: op,
		Params:    operation.NewParams(exec.Parameters, description, resource, op, 0),
		Execution: exec,
	}
}
