package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestHTTPTransport_Execute_Success(t *testing.T) {
	var gotQuery, gotMethod, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("X-Request-ID", "req-1")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	tr := NewHTTPTransport(server.Client())
	resp, err := tr.Execute(context.Background(), &Request{
		Method: http.MethodPost,
		URL:    server.URL + "/collections/books/documents?action=upsert",
		Query:  map[string]string{"dirty_values": "coerce_or_reject"},
		Body:   []byte(`{"id":"1"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"ok":true}`, string(resp.Body))
	assert.Equal(t, "req-1", resp.Metadata[MetadataRequestID])
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "action=upsert&dirty_values=coerce_or_reject", gotQuery)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, `{"id":"1"}`, string(gotBody))
}

func TestHTTPTransport_Execute_StatusErrors(t *testing.T) {
	tests := []struct {
		status   int
		wantType ErrorType
	}{
		{http.StatusBadRequest, ErrorTypeClient},
		{http.StatusUnauthorized, ErrorTypeAuth},
		{http.StatusForbidden, ErrorTypeAuth},
		{http.StatusNotFound, ErrorTypeClient},
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusServiceUnavailable, ErrorTypeServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			}))
			defer server.Close()

			_, err := NewHTTPTransport(server.Client()).Execute(context.Background(), &Request{
				Method: http.MethodGet,
				URL:    server.URL,
			})

			var tErr *TransportError
			require.ErrorAs(t, err, &tErr)
			assert.Equal(t, tt.wantType, tErr.Type)
			assert.Equal(t, tt.status, tErr.StatusCode)
			assert.Equal(t, `{"message":"nope"}`, string(tErr.Body))
			assert.Equal(t, 1, calls, "requests must not be retried")
		})
	}
}

func TestHTTPTransport_Execute_InvalidRequest(t *testing.T) {
	tr := NewHTTPTransport(nil)

	for _, req := range []*Request{
		nil,
		{URL: "http://localhost"},
		{Method: "TRACE", URL: "http://localhost"},
		{Method: http.MethodGet},
	} {
		_, err := tr.Execute(context.Background(), req)
		var tErr *TransportError
		require.ErrorAs(t, err, &tErr)
		assert.True(t, tErr.IsType(ErrorTypeInvalidReq))
	}
}

func TestHTTPTransport_Execute_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewHTTPTransport(nil).Execute(context.Background(), &Request{Method: http.MethodGet, URL: url})
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, ErrorTypeConnection, tErr.Type)
	assert.Zero(t, tErr.StatusCode)
}

func TestHTTPTransport_Execute_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPTransport(server.Client()).Execute(ctx, &Request{Method: http.MethodGet, URL: server.URL})
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, ErrorTypeCancelled, tErr.Type)
	assert.ErrorIs(t, err, context.Canceled)
}

type countingLimiter struct {
	calls int
	err   error
}

func (l *countingLimiter) Wait(ctx context.Context) error {
	l.calls++
	return l.err
}

func TestHTTPTransport_RateLimiter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	tr := NewHTTPTransport(server.Client())
	limiter := &countingLimiter{}
	tr.SetRateLimiter(limiter)

	_, err := tr.Execute(context.Background(), &Request{Method: http.MethodGet, URL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, 1, limiter.calls)

	limiter.err = errors.New("limit")
	_, err = tr.Execute(context.Background(), &Request{Method: http.MethodGet, URL: server.URL})
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, ErrorTypeCancelled, tErr.Type)
}

func TestNewRateLimiter(t *testing.T) {
	assert.Nil(t, NewRateLimiter(0, 1))

	limiter := NewRateLimiter(1000, 0)
	require.NotNil(t, limiter)
	assert.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	slow := NewRateLimiter(0.001, 1)
	require.NoError(t, slow.Wait(context.Background()))
	assert.Error(t, slow.Wait(ctx))
}

type failingTokenSource struct{}

func (failingTokenSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("refresh token revoked")
}

func TestOAuth2Transport(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "ya29.token"})
	tr := NewOAuth2Transport(NewHTTPTransport(server.Client()), ts)
	assert.Equal(t, "oauth2", tr.Name())

	headers := map[string]string{"Accept": "application/json"}
	_, err := tr.Execute(context.Background(), &Request{Method: http.MethodGet, URL: server.URL, Headers: headers})
	require.NoError(t, err)
	assert.Equal(t, "Bearer ya29.token", gotAuth)
	assert.NotContains(t, headers, "Authorization", "caller headers must not be mutated")

	_, err = NewOAuth2Transport(NewHTTPTransport(server.Client()), failingTokenSource{}).
		Execute(context.Background(), &Request{Method: http.MethodGet, URL: server.URL})
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, ErrorTypeAuth, tErr.Type)
}
