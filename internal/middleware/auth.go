package middleware

import (
	"net/http"
	"strings"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/httpx"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/auth"
)

type AuthMiddleware struct {
	TM     *auth.TokenManager
	AppEnv string
}

func NewAuthMiddleware(tm *auth.TokenManager, appEnv string) *AuthMiddleware {
	return &AuthMiddleware{TM: tm, AppEnv: appEnv}
}

// Auth requires a Bearer access token. In dev the literal token
// "dev-<user id>" is accepted so local clients can skip the login flow.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		if m.AppEnv == "dev" && strings.HasPrefix(token, "dev-") {
			uid := strings.TrimPrefix(token, "dev-")
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), UserCtx{UserID: uid})))
			return
		}

		claims, err := m.TM.ParseAccess(token)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid access token", nil)
			return
		}
		ctx := WithUser(r.Context(), UserCtx{UserID: claims.UserID, Email: claims.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
