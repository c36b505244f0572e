package security

import (
	"context"
	"time"
)

// Session authenticated master of the current request
// Built by the auth middleware for every request and carried explicitly in the request context
type Session struct {
	MasterID  int64
	Email     string
	Slug      string
	TokenID   string
	ExpiresAt time.Time
}

type sessionKey struct{}

// WithSession кладет сессию в контекст запроса
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext достает сессию из контекста
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
