package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mindsai/account-api/internal/api/metrics"
	"github.com/mindsai/account-api/internal/core/domain"
)

// Owner lets the request through only when the path parameter param equals
// the authenticated identity. It must run after Auth. A parameter that does
// not parse as an identity is treated as a mismatch.
func Owner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}

			target, err := strconv.ParseInt(c.Param(param), 10, 64)
			if err != nil || domain.UserID(target) != id {
				metrics.GuardRejectionsTotal.WithLabelValues("owner", "mismatch").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
