package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/xavierca1/capacita-crm/internal/infra/auth"
)

type contextKey string

const claimsKey contextKey = "admin-claims"

const LoginPath = "/admin/login"

// SessionParser is satisfied by auth.TokenManager.
type SessionParser interface {
	Parse(token string) (*auth.Claims, error)
}

// RequireAdmin rejects requests without a valid admin-session cookie. API
// callers get a 401 JSON body; browser pages are redirected to the login page.
func RequireAdmin(sessions SessionParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err == nil && cookie.Value != "" {
				if claims, err := sessions.Parse(cookie.Value); err == nil {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}
				log.Printf("auth: sessão inválida em %s", r.URL.Path)
			}

			if strings.HasPrefix(r.URL.Path, "/api/") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"code":    "UNAUTHORIZED",
					"message": "Sesión inválida o expirada",
				})
				return
			}
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		})
	}
}

func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}
