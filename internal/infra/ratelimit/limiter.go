package ratelimit

import (
	"context"
	"net"
	"net/http"
)

// Limiter decides whether key may perform one more request in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ClientIP keys on the connection address only. Forwarding headers are
// honoured upstream by middleware.RealIP when the proxy is trusted.
func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
