// Package http builds the outbound HTTP clients used for third-party APIs.
package http

import (
	"net"
	"net/http"
	"time"
)

// UserAgent identifies this service to the APIs it calls.
const UserAgent = "shadowdark-backend (+https://github.com/shadowdark-backend)"

// NewHTTPClient creates a client for calls to external APIs.
// http.DefaultClient has no timeout, so callers always go through here.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: &userAgentTransport{next: t}}
}

// userAgentTransport stamps UserAgent on requests that don't set their own.
type userAgentTransport struct {
	next http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", UserAgent)
	return t.next.RoundTrip(r)
}
