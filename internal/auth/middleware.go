package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/seapgd/docket-core/internal/httpapi"
	"github.com/seapgd/docket-core/internal/user/entity"
)

type ctxKey struct{}

// ClaimsFromContext returns the verified session claims, if any.
func ClaimsFromContext(ctx context.Context) (*SessionClaims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*SessionClaims)
	return c, ok
}

// RequireSession verifies the Bearer session token on every request and
// attaches the claims to the context. No client-held flag is trusted.
func RequireSession(sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				httpapi.WriteError(w, http.StatusUnauthorized, "sessão ausente")
				return
			}
			claims, err := sessions.Verify(strings.TrimSpace(authz[len("bearer "):]))
			if err != nil {
				httpapi.WriteError(w, http.StatusUnauthorized, "sessão inválida ou expirada")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
		})
	}
}

// RequireAdmin gates admin routes on the role claim. It must run inside
// RequireSession.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || claims.Role != entity.RoleAdmin {
			httpapi.WriteError(w, http.StatusForbidden, "acesso restrito a administradores")
			return
		}
		next.ServeHTTP(w, r)
	})
}
