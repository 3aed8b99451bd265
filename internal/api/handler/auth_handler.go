package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mindsai/account-api/internal/api/metrics"
	"github.com/mindsai/account-api/internal/api/middleware"
	"github.com/mindsai/account-api/internal/api/session"
	"github.com/mindsai/account-api/internal/core/domain"
	"github.com/mindsai/account-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	userService ports.UserService
	transport   *session.Transport
	tokens      ports.TokenValidator
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService, transport *session.Transport, tokens ports.TokenValidator, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		transport:   transport,
		tokens:      tokens,
		log:         log,
	}
}

type loginRequest struct {
	Email  string `json:"email"  validate:"required,email"`
	Secret string `json:"secret" validate:"required,secret"`
	// Password is accepted as an alias of Secret.
	Password string `json:"password,omitempty"`
}

type userEnvelope struct {
	User *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Secret == "" {
		req.Secret = req.Password
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Secret)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	h.transport.Attach(c, res.Token)
	return c.JSON(http.StatusOK, userEnvelope{User: &res.User})
}

// Logout clears the session cookie. It succeeds whether or not the request
// carried a session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token, ok := h.transport.Extract(c); ok {
		if sess, err := h.tokens.Validate(token); err == nil {
			if err := h.authService.Logout(c.Request().Context(), &sess); err != nil {
				h.log.Error().Err(err).Int64("user_id", int64(sess.UserID)).Msg("failed to revoke session")
			}
		}
	}
	metrics.LogoutsTotal.Inc()

	h.transport.Detach(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Me returns the profile of the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  userEnvelope
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	sess, ok := middleware.SessionFromContext(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}

	user, err := h.userService.Get(ctx, sess.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userEnvelope{User: user})
}
