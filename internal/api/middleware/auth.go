package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mindsai/account-api/internal/api/metrics"
	"github.com/mindsai/account-api/internal/api/session"
	"github.com/mindsai/account-api/internal/core/domain"
	"github.com/mindsai/account-api/internal/core/ports"
)

// Auth extracts the session token, validates it and attaches the resulting
// session to the request. Absent and invalid tokens are rejected with the same
// domain.ErrUnauthenticated. The credential store is never consulted.
//
// denylist may be nil. When set, a revoked token is treated as invalid and a
// failed lookup rejects the request.
func Auth(transport *session.Transport, validator ports.TokenValidator, denylist ports.SessionDenylist, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := transport.Extract(c)
			if !ok {
				metrics.GuardRejectionsTotal.WithLabelValues("auth", "missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			sess, err := validator.Validate(token)
			if err != nil {
				metrics.GuardRejectionsTotal.WithLabelValues("auth", "invalid_token").Inc()
				return domain.ErrUnauthenticated
			}

			if denylist != nil && sess.TokenID != "" {
				revoked, err := denylist.IsRevoked(c.Request().Context(), sess.TokenID)
				if err != nil {
					log.Error().Err(err).Str("path", c.Path()).Msg("session denylist lookup failed")
					metrics.GuardRejectionsTotal.WithLabelValues("auth", "denylist_error").Inc()
					return domain.ErrUnauthenticated
				}
				if revoked {
					metrics.GuardRejectionsTotal.WithLabelValues("auth", "revoked_token").Inc()
					return domain.ErrUnauthenticated
				}
			}

			SetSession(c, sess)
			return next(c)
		}
	}
}
