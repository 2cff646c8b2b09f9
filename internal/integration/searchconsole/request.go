package searchconsole

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/AvivoB/N8N-nodes/internal/host"
	"github.com/AvivoB/N8N-nodes/internal/operation"
	"github.com/AvivoB/N8N-nodes/internal/operation/api"
	"github.com/AvivoB/N8N-nodes/internal/operation/transport"
	pkgerrors "github.com/AvivoB/N8N-nodes/pkg/errors"
)

var statusMessages = operation.StatusMessages{
	http.StatusBadRequest:      {Type: operation.ErrorTypeInvalidRequest, Message: "Bad Request - Invalid parameters"},
	http.StatusUnauthorized:    {Type: operation.ErrorTypeUnauthorized, Message: "Unauthorized - Check your OAuth2 credentials"},
	http.StatusForbidden:       {Type: operation.ErrorTypeForbidden, Message: "Forbidden - Insufficient permissions or quota exceeded"},
	http.StatusNotFound:        {Type: operation.ErrorTypeNotFound, Message: "Not Found - Site or resource does not exist"},
	http.StatusTooManyRequests: {Type: operation.ErrorTypeRateLimit, Message: "Too Many Requests - Rate limit exceeded"},
}

var errNoCredentials = &pkgerrors.ConfigError{
	Key:    CredentialName,
	Reason: "No credentials got returned!",
}

// apiRequest is one call to the API. URI, when set, replaces the base URL
// and endpoint.
type apiRequest struct {
	Method   string
	Endpoint string
	Body     map[string]any
	Query    map[string]string
	URI      string
}

// request sends one authenticated request and decodes the response.
func (n *Node) request(ctx context.Context, call *operation.Call, req apiRequest) (any, error) {
	resp, err := n.send(ctx, call, req)
	if err != nil {
		return nil, err
	}
	decoded, err := api.DecodeBody(resp.Body)
	if err != nil {
		return nil, operation.FromTransportError(err, statusMessages)
	}
	return decoded, nil
}

func (n *Node) send(ctx context.Context, call *operation.Call, req apiRequest) (*transport.Response, error) {
	ts, err := n.tokenSource(ctx, call)
	if err != nil {
		return nil, err
	}

	body, err := api.EncodeBody(req.Method, req.Body)
	if err != nil {
		return nil, err
	}

	url := req.URI
	if url == "" {
		url = api.BuildURL(n.baseURL, req.Endpoint)
	}

	client := &operation.Client{
		Node:      NodeName,
		Transport: transport.NewOAuth2Transport(n.transport, ts),
		Messages:  statusMessages,
	}
	return client.Send(ctx, call, &transport.Request{
		Method: req.Method,
		URL:    url,
		Headers: map[string]string{
			"Accept":       "application/json",
			"Content-Type": "application/json",
		},
		Query: req.Query,
		Body:  body,
	})
}

func (n *Node) tokenSource(ctx context.Context, call *operation.Call) (oauth2.TokenSource, error) {
	if call == nil || call.Execution == nil || call.Execution.Tokens == nil {
		return nil, errNoCredentials
	}
	ts, err := call.Execution.Tokens.TokenSource(ctx, CredentialName)
	if errors.Is(err, host.ErrCredentialsNotFound) {
		return nil, &pkgerrors.ConfigError{Key: CredentialName, Reason: errNoCredentials.Reason, Cause: err}
	}
	if err != nil {
		return nil, err
	}
	if ts == nil {
		return nil, errNoCredentials
	}
	return ts, nil
}
