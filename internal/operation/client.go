package operation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/AvivoB/N8N-nodes/internal/log"
	"github.com/AvivoB/N8N-nodes/internal/operation/api"
	"github.com/AvivoB/N8N-nodes/internal/operation/transport"
)

// Client sends a node's requests through a transport and translates
// failures with the node's status table. It is shared by the per-node
// request helpers, which own URL building and authentication.
type Client struct {
	// Node labels metrics and spans
	Node string

	// Transport executes the exchange
	Transport transport.Transport

	// Messages maps statuses to the node's fixed error messages
	Messages StatusMessages
}

// Do executes req once and decodes the JSON response body. An empty body
// decodes to nil.
func (c *Client) Do(ctx context.Context, call *Call, req *transport.Request) (any, error) {
	resp, err := c.Send(ctx, call, req)
	if err != nil {
		return nil, err
	}
	decoded, err := api.DecodeBody(resp.Body)
	if err != nil {
		return nil, FromTransportError(err, c.Messages)
	}
	return decoded, nil
}

// Send executes req once and returns the raw response.
func (c *Client) Send(ctx context.Context, call *Call, req *transport.Request) (*transport.Response, error) {
	resource, op := "", ""
	logger := slog.Default()
	if call != nil {
		resource, op = call.Resource, call.Operation
		if call.Logger != nil {
			logger = call.Logger
		}
	}

	ctx, span := startRequestSpan(ctx, c.Node, req.Method, req.URL)
	if len(req.Body) > 0 {
		log.Trace(ctx, logger, "node request body", slog.String("body", clip(req.Body)))
	}

	start := time.Now()
	resp, err := c.Transport.Execute(ctx, req)
	duration := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	var tErr *transport.TransportError
	if err != nil && errors.As(err, &tErr) {
		status = tErr.StatusCode
	}
	recordRequest(c.Node, resource, op, status, duration)

	if err != nil {
		mapped := FromTransportError(err, c.Messages)
		endSpan(span, mapped)
		logger.Debug("node request failed",
			slog.String("method", req.Method),
			slog.Int("status", status),
			slog.Int64(log.DurationKey, duration.Milliseconds()),
		)
		if tErr != nil && len(tErr.Body) > 0 {
			log.Trace(ctx, logger, "node error body", slog.String("body", clip(tErr.Body)))
		}
		return nil, mapped
	}

	endSpan(span, nil)
	logger.Debug("node request completed",
		slog.String("method", req.Method),
		slog.Int("status", status),
		slog.Int64(log.DurationKey, duration.Milliseconds()),
	)
	log.Trace(ctx, logger, "node response body", slog.String("body", clip(resp.Body)))
	return resp, nil
}

// maxLoggedBody caps bodies written at trace level.
const maxLoggedBody = 4096

func clip(body []byte) string {
	if len(body) <= maxLoggedBody {
		return string(body)
	}
	return string(body[:maxLoggedBody]) + "...(truncated)"
}
