// Package session binds session tokens to the access_token cookie.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the name of the cookie carrying the session token.
const CookieName = "access_token"

// Transport writes, clears and reads the session cookie.
type Transport struct {
	secure bool
	maxAge time.Duration
}

// NewTransport returns a Transport. secure sets the cookie's Secure attribute
// and must come from explicit deployment configuration.
func NewTransport(secure bool, maxAge time.Duration) *Transport {
	return &Transport{secure: secure, maxAge: maxAge}
}

// Attach sets the session cookie on the response.
func (t *Transport) Attach(c echo.Context, token string) {
	c.SetCookie(t.cookie(token, int(t.maxAge/time.Second), time.Now().Add(t.maxAge)))
}

// Detach expires the session cookie, whether or not the request carried one.
func (t *Transport) Detach(c echo.Context) {
	c.SetCookie(t.cookie("", -1, time.Unix(0, 0)))
}

// Extract returns the session token from the cookie, or from an
// "Authorization: Bearer" header when no cookie is present. ok is false when
// neither carries a token.
func (t *Transport) Extract(c echo.Context) (token string, ok bool) {
	if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
		return ck.Value, true
	}

	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && strings.TrimSpace(parts[1]) != "" {
		return strings.TrimSpace(parts[1]), true
	}
	return "", false
}

func (t *Transport) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
