package operation

import (
	"context"
	"errors"
	"net/http"

	"github.com/AvivoB/N8N-nodes/internal/host"
	"github.com/AvivoB/N8N-nodes/internal/operation/api"
	"github.com/AvivoB/N8N-nodes/internal/operation/transport"
)

// mapParams resolves parameters from a fixed map, identical for every item
// unless perItem overrides a name.
type mapParams struct {
	values  map[string]any
	perItem map[int]map[string]any
	err     error
}

func (m *mapParams) ResolveParameter(_ context.Context, name string, index int) (any, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	if item, ok := m.perItem[index]; ok {
		if v, ok := item[name]; ok {
			return v, true, nil
		}
	}
	v, ok := m.values[name]
	return v, ok, nil
}

// mockTransport records the last request and replays a canned response.
type mockTransport struct {
	lastRequest *transport.Request
	requests    int
	response    *transport.Response
	err         error
	rateLimiter transport.RateLimiter
}

func (m *mockTransport) Execute(_ context.Context, req *transport.Request) (*transport.Response, error) {
	m.lastRequest = req
	m.requests++
	if m.err != nil {
		return nil, m.err
	}
	if m.response != nil {
		return m.response, nil
	}
	return &transport.Response{StatusCode: http.StatusOK}, nil
}

func (m *mockTransport) Name() string { return "mock" }

func (m *mockTransport) SetRateLimiter(limiter transport.RateLimiter) { m.rateLimiter = limiter }

// echoNode returns the item's JSON, or fails for items holding "fail".
type echoNode struct {
	calls []*Call
}

var errEcho = &Error{Type: ErrorTypeNotFound, Message: "Not Found - echo", StatusCode: 404}

func (n *echoNode) Description() *api.NodeDescription {
	return &api.NodeDescription{
		Name:        "echo",
		DisplayName: "Echo",
		Resources: []api.ResourceInfo{
			{
				Name:             "record",
				DefaultOperation: "get",
				Operations: []api.OperationInfo{
					{Name: "get", Method: http.MethodGet},
					{Name: "list", Method: http.MethodGet},
				},
			},
		},
		Parameters: []api.ParameterInfo{
			{Name: "resource", Type: "options", Default: "record"},
			{Name: "operation", Type: "options", Default: "get", Show: &api.DisplayOptions{Resource: []string{"record"}}},
			{Name: "limit", Type: "number", Default: 10, Show: &api.DisplayOptions{Operation: []string{"list"}}},
			{Name: "format", Type: "string", Default: "full", Show: &api.DisplayOptions{Operation: []string{"get"}}},
		},
	}
}

func (n *echoNode) Execute(_ context.Context, call *Call) (any, error) {
	n.calls = append(n.calls, call)
	if _, fail := call.Item.JSON["fail"]; fail {
		return nil, errEcho
	}
	if call.Operation == "list" {
		return []any{map[string]any{"n": 1}, map[string]any{"n": 2}}, nil
	}
	if len(call.Item.JSON) == 0 {
		return nil, nil
	}
	return call.Item.JSON, nil
}

func items(records ...map[string]any) []host.InputItem {
	out := make([]host.InputItem, len(records))
	for i, r := range records {
		out[i] = host.InputItem{JSON: r}
	}
	return out
}

var errBoom = errors.New("boom")
