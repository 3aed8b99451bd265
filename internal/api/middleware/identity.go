package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/mindsai/account-api/internal/core/domain"
)

const sessionKey = "session"

type sessionCtxKey struct{}

// SetSession attaches sess to both the echo and the request context.
func SetSession(c echo.Context, sess domain.Session) {
	c.Set(sessionKey, sess)
	c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), sessionCtxKey{}, sess)))
}

// SessionFrom returns the session attached by Auth.
func SessionFrom(c echo.Context) (domain.Session, bool) {
	sess, ok := c.Get(sessionKey).(domain.Session)
	return sess, ok
}

// IdentityFrom returns the authenticated identity attached by Auth.
func IdentityFrom(c echo.Context) (domain.UserID, bool) {
	sess, ok := SessionFrom(c)
	return sess.UserID, ok
}

// SessionFromContext is the context.Context counterpart of SessionFrom, for
// code that only holds the request context.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	sess, ok := ctx.Value(sessionCtxKey{}).(domain.Session)
	return sess, ok
}
