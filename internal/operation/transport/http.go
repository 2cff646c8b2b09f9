package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// maxErrorMessageBody bounds how much of an error body is copied into Message.
const maxErrorMessageBody = 500

var validMethods = map[string]bool{
	http.MethodGet: true, http.MethodPost: true, http.MethodPut: true, http.MethodDelete: true,
	http.MethodPatch: true, http.MethodHead: true, http.MethodOptions: true,
}

// HTTPTransport implements Transport over an *http.Client.
type HTTPTransport struct {
	client      *http.Client
	rateLimiter RateLimiter
}

// NewHTTPTransport creates a transport. A nil client uses http.DefaultClient.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{client: client}
}

// Name returns "http".
func (t *HTTPTransport) Name() string {
	return "http"
}

// SetRateLimiter configures rate limiting for this transport.
func (t *HTTPTransport) SetRateLimiter(limiter RateLimiter) {
	t.rateLimiter = limiter
}

// Execute sends one HTTP request. Statuses of 400 and above are returned as
// *TransportError carrying the status code and body.
func (t *HTTPTransport) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeInvalidReq,
			Message: fmt.Sprintf("invalid request: %s", err.Error()),
			Cause:   err,
		}
	}

	if t.rateLimiter != nil {
		if err := t.rateLimiter.Wait(ctx); err != nil {
			return nil, &TransportError{
				Type:    ErrorTypeCancelled,
				Message: "rate limit wait cancelled",
				Cause:   err,
			}
		}
	}

	httpReq, err := buildHTTPRequest(ctx, req)
	if err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeInvalidReq,
			Message: fmt.Sprintf("failed to build HTTP request: %s", err.Error()),
			Cause:   err,
		}
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, classifyHTTPError(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeConnection,
			Message: fmt.Sprintf("failed to read response body: %s", err.Error()),
			Cause:   err,
		}
	}

	requestID := httpResp.Header.Get("X-Request-ID")

	if httpResp.StatusCode >= 400 {
		message := fmt.Sprintf("HTTP %d", httpResp.StatusCode)
		if len(body) > 0 && len(body) < maxErrorMessageBody {
			message = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode, strings.TrimSpace(string(body)))
		}
		return nil, &TransportError{
			Type:       classifyStatus(httpResp.StatusCode),
			StatusCode: httpResp.StatusCode,
			Message:    message,
			RequestID:  requestID,
			Body:       body,
		}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
		Metadata:   make(map[string]any),
	}
	if requestID != "" {
		resp.Metadata[MetadataRequestID] = requestID
	}
	return resp, nil
}

func validateRequest(req *Request) error {
	if req == nil {
		return errors.New("request is nil")
	}
	if req.Method == "" {
		return errors.New("method is required")
	}
	if !validMethods[req.Method] {
		return fmt.Errorf("invalid HTTP method: %q", req.Method)
	}
	if req.URL == "" {
		return errors.New("URL is required")
	}
	return nil
}

// buildHTTPRequest constructs an http.Request, merging Query into any query
// the URL already carries.
func buildHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), bodyReader)
	if err != nil {
		return nil, err
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	return httpReq, nil
}

// classifyHTTPError classifies client errors that produced no response.
func classifyHTTPError(err error) *TransportError {
	if errors.Is(err, context.Canceled) {
		return &TransportError{Type: ErrorTypeCancelled, Message: "request cancelled", Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) || isTimeoutError(err) {
		return &TransportError{Type: ErrorTypeTimeout, Message: "request timeout", Cause: err}
	}
	if isConnectionError(err) {
		return &TransportError{Type: ErrorTypeConnection, Message: "connection error", Cause: err}
	}
	return &TransportError{
		Type:    ErrorTypeConnection,
		Message: fmt.Sprintf("HTTP error: %s", err.Error()),
		Cause:   err,
	}
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	for _, keyword := range []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network unreachable",
		"eof",
	} {
		if strings.Contains(errMsg, keyword) {
			return true
		}
	}
	return false
}
