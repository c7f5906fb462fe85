package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry is a no-op when dsn is empty.
func InitSentry(dsn, environment string) error {
	if dsn == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          "capacita-crm@1.0.0",
		TracesSampleRate: 0.2,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	return nil
}

func FlushSentry() {
	sentry.Flush(2 * time.Second)
}

// Sentry gives each request its own hub carrying request metadata, and reports
// panics before handing them on to chi's Recoverer.
func Sentry(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetContext("Request", map[string]interface{}{
				"Method":  r.Method,
				"URL":     r.URL.String(),
				"Headers": getSafeHeaders(r.Header),
			})
			scope.SetTag("http.method", r.Method)
		})

		defer func() {
			if rec := recover(); rec != nil {
				hub.RecoverWithContext(r.Context(), rec)
				panic(rec)
			}
		}()

		next.ServeHTTP(w, r.WithContext(sentry.SetHubOnContext(r.Context(), hub)))
	})
}

func getSafeHeaders(h http.Header) map[string]interface{} {
	safe := make(map[string]interface{})
	for k, v := range h {
		if strings.EqualFold(k, "Authorization") || strings.EqualFold(k, "Cookie") {
			safe[k] = "[FILTERED]"
		} else {
			safe[k] = v
		}
	}
	return safe
}

// CaptureError reports err with the request's hub, falling back to the global one.
func CaptureError(r *http.Request, err error, extra map[string]interface{}) {
	hub := sentry.GetHubFromContext(r.Context())
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range extra {
			scope.SetExtra(k, v)
		}
		hub.CaptureException(err)
	})
}
