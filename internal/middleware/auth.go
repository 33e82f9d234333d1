package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/drivedeal/drivedeal-backend/internal/api/httpx"
	"github.com/drivedeal/drivedeal-backend/internal/auth"
)

type identityKey struct{}

// IdentityFrom returns the authenticated caller bound to the request, if any.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	return id, ok
}

// WithIdentity is exported for handler tests that bypass the middleware.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// AuthMiddleware resolves the caller's identity once per request from either
// credential carrier: an Authorization bearer token, or the session cookie.
type AuthMiddleware struct {
	TM         *auth.TokenManager
	CookieName string
}

func NewAuthMiddleware(tm *auth.TokenManager, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{TM: tm, CookieName: cookieName}
}

func (m *AuthMiddleware) token(r *http.Request) string {
	if ah := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return strings.TrimSpace(ah[len("Bearer "):])
	}
	if c, err := r.Cookie(m.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// Authenticate rejects requests without a valid identity binding.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := m.token(r)
		if tok == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		id, err := m.TM.Parse(tok)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireAdmin allows only administrators through. It must run after
// Authenticate; it never re-queries the store.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok || !id.IsAdmin {
			httpx.WriteError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
