package fetcher

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "nowplaying"

	// maxBodySize caps how much of a response is decoded.
	maxBodySize = 8 << 20
)

// Transport performs a GET and decodes the body as JSON. Numbers must be
// decoded as json.Number so their literal form survives.
type Transport interface {
	GetJSON(ctx context.Context, url string, headers map[string]string) (interface{}, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, url string, headers map[string]string) (interface{}, error)

func (f TransportFunc) GetJSON(ctx context.Context, url string, headers map[string]string) (interface{}, error) {
	return f(ctx, url, headers)
}

type HTTPTransport struct {
	client    *http.Client
	userAgent string
}

// NewHTTPTransport returns a Transport backed by client. A nil client gets
// one with connect and overall request timeouts of timeout.
func NewHTTPTransport(client *http.Client, userAgent string, timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if client == nil {
		dialer := &net.Dialer{Timeout: timeout}
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           dialer.DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				MaxIdleConnsPerHost:   16,
				IdleConnTimeout:       90 * time.Second,
			},
			Timeout: timeout,
		}
	}

	return &HTTPTransport{
		client:    client,
		userAgent: userAgent,
	}
}

func (t *HTTPTransport) GetJSON(ctx context.Context, url string, headers map[string]string) (interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, errors.Errorf("unexpected status %s", resp.Status)
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "failed to decode response body")
	}

	return v, nil
}
