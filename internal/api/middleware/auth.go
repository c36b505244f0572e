package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SlottaService/internal/api/handlers"
	"github.com/m04kA/SMC-SlottaService/internal/security"
)

const msgInvalidToken = "отсутствует или недействителен токен авторизации"

// TokenValidator проверка JWT мастера
type TokenValidator interface {
	Validate(token string) (*security.Session, error)
}

// Auth требует заголовок Authorization: Bearer <jwt> и кладет Session в контекст
func Auth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := sessionFromRequest(r, tokens)
			if !ok {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}
			next.ServeHTTP(w, r.WithContext(security.WithSession(r.Context(), session)))
		})
	}
}

// OptionalAuth кладет Session в контекст, если передан валидный токен; запрос без токена пропускается
// Невалидный токен отклоняется, чтобы клиент не работал молча как аноним
func OptionalAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			session, ok := sessionFromRequest(r, tokens)
			if !ok {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}
			next.ServeHTTP(w, r.WithContext(security.WithSession(r.Context(), session)))
		})
	}
}

// GetMasterID ID мастера из сессии запроса
func GetMasterID(ctx context.Context) (int64, bool) {
	session, ok := security.SessionFromContext(ctx)
	if !ok {
		return 0, false
	}
	return session.MasterID, true
}

func sessionFromRequest(r *http.Request, tokens TokenValidator) (*security.Session, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return nil, false
	}
	session, err := tokens.Validate(strings.TrimSpace(token))
	if err != nil {
		return nil, false
	}
	return session, true
}
