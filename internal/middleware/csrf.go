package middleware

import (
	"crypto/subtle"
	"net/http"

	"stockfolio/internal/logger"
	helpers "stockfolio/internal/utils/helpers"

	"github.com/google/uuid"
)

const (
	CSRFCookie = "csrftoken"
	CSRFHeader = "X-CSRFToken"
)

// CSRF пропускает изменяющие запросы, только если заголовок X-CSRFToken
// совпадает с cookie csrftoken.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(CSRFHeader)
		cookie, err := r.Cookie(CSRFCookie)
		if err != nil || header == "" ||
			subtle.ConstantTimeCompare([]byte(header), []byte(cookie.Value)) != 1 {
			logger.WithCtx(r.Context()).Warn("CSRF: токен отсутствует или не совпадает")
			helpers.Error(w, http.StatusForbidden, "csrf token missing or incorrect")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IssueCSRFToken возвращает токен из cookie или выдаёт новый.
func IssueCSRFToken(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CSRFCookie); err == nil && c.Value != "" {
		return c.Value
	}
	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookie,
		Value:    token,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	return token
}
