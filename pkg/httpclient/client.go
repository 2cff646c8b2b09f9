package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// New returns the client every node request goes through. It never retries;
// each round trip is logged once with credentials stripped from the URL and
// carries the configured User-Agent. When cfg.CheckHost is set the
// destination is checked before any byte is sent.
func New(cfg Config) (*http.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var rt http.RoundTripper = newBaseTransport(cfg)
	if cfg.CheckHost != nil {
		rt = &hostCheckTransport{base: rt, check: cfg.CheckHost}
	}

	return &http.Client{
		Transport: newLoggingTransport(rt, cfg.UserAgent, cfg.Logger),
		Timeout:   cfg.Timeout,
	}, nil
}

// newBaseTransport pins TLS to 1.2+ and bounds every connection phase.
// ResponseHeaderTimeout follows cfg.Timeout so a stalled Typesense node
// fails the same way a slow one does.
func newBaseTransport(cfg Config) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: cfg.TLSInsecure, //nolint:gosec // opt-in for self-signed local instances
		},
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ExpectContinueTimeout: time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
	}
}
