package typesense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/AvivoB/N8N-nodes/internal/host"
	"github.com/AvivoB/N8N-nodes/internal/log"
	"github.com/AvivoB/N8N-nodes/internal/operation"
	"github.com/AvivoB/N8N-nodes/internal/operation/api"
	"github.com/AvivoB/N8N-nodes/internal/operation/transport"
	pkgerrors "github.com/AvivoB/N8N-nodes/pkg/errors"
)

var statusMessages = operation.StatusMessages{
	http.StatusBadRequest:          {Type: operation.ErrorTypeInvalidRequest, Message: "Bad Request - Invalid parameters or malformed request"},
	http.StatusUnauthorized:        {Type: operation.ErrorTypeUnauthorized, Message: "Unauthorized - Check your API key"},
	http.StatusNotFound:            {Type: operation.ErrorTypeNotFound, Message: "Not Found - Collection or document does not exist"},
	http.StatusConflict:            {Type: operation.ErrorTypeConflict, Message: "Conflict - Resource already exists"},
	http.StatusUnprocessableEntity: {Type: operation.ErrorTypeUnprocessable, Message: "Unprocessable Entity - Invalid data format"},
}

const noCredentialsReason = "No credentials got returned!"

// request sends one request to the Typesense server configured by the
// typesenseApi credential and decodes the response.
func (n *Node) request(ctx context.Context, call *operation.Call, method, endpoint string, body any, query map[string]string) (any, error) {
	creds, err := credentials(ctx, call)
	if err != nil {
		return nil, err
	}

	encoded, err := api.EncodeBody(method, body)
	if err != nil {
		return nil, err
	}
	if call.Logger != nil {
		call.Logger.Debug("typesense request",
			slog.String("endpoint", endpoint),
			slog.String("server", baseURL(creds)),
			slog.String("api_key", log.SanitizeAPIKey(creds.String("apiKey"))),
		)
	}

	client := &operation.Client{
		Node:      NodeName,
		Transport: n.transport,
		Messages:  statusMessages,
	}
	return client.Do(ctx, call, &transport.Request{
		Method: method,
		URL:    api.BuildURL(baseURL(creds), endpoint),
		Headers: map[string]string{
			APIKeyHeader:   creds.String("apiKey"),
			"Content-Type": "application/json",
		},
		Query: query,
		Body:  encoded,
	})
}

// credentials resolves typesenseApi with the declared defaults applied.
func credentials(ctx context.Context, call *operation.Call) (host.Credentials, error) {
	creds, err := call.Credentials(ctx, CredentialName)
	if errors.Is(err, host.ErrCredentialsNotFound) || (err == nil && creds == nil) {
		return nil, &pkgerrors.ConfigError{Key: CredentialName, Reason: noCredentialsReason, Cause: err}
	}
	if err != nil {
		return nil, err
	}
	return host.Credentials(Credential.WithDefaults(creds)), nil
}

func baseURL(creds host.Credentials) string {
	protocol := creds.String("protocol")
	if protocol == "" {
		protocol = "http"
	}
	return fmt.Sprintf("%s://%s:%s", protocol, creds.String("host"), creds.String("port"))
}
