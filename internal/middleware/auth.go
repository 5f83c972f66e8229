package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"SecondChance/internal/auth"
)

type ctxKey string

const (
	userIDKey ctxKey = "user_id"

	// AuthCookieName имя cookie с JWT.
	AuthCookieName = "auth_token"
)

// WithAuth извлекает пользователя из Bearer-токена или cookie и кладёт его id в контекст.
// Запрос без токена или с невалидным токеном пропускается анонимно.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := auth.ParseToken(token, secret)
			if err != nil {
				sugar.Debugw("auth: token rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(AuthCookieName); err == nil {
		return c.Value
	}
	return ""
}

// GetUserIDFromContext возвращает id пользователя, если запрос авторизован.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userIDKey).(string)
	return uid, ok && uid != ""
}

// SetLoginCookie выставляет cookie с токеном. ttl == 0 — сессионная cookie.
func SetLoginCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	c := &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		c.MaxAge = int(ttl.Seconds())
	}
	http.SetCookie(w, c)
}
