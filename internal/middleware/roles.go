package middleware

import (
	"net/http"

	"stockfolio/internal/reqctx"
)

// OnlyRole для изменяющих запросов требует роль из JWT.
// Если JWTAuth отключён (роли в контексте нет и auth выключен), пропускает.
func OnlyRole(role string, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled || r.Method == http.MethodGet || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			userRole, ok := reqctx.GetRole(r.Context())
			if !ok || userRole != role {
				http.Error(w, "Доступ запрещён", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
