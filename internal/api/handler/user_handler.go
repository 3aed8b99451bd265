package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindsai/account-api/internal/api/metrics"
	"github.com/mindsai/account-api/internal/api/middleware"
	"github.com/mindsai/account-api/internal/core/domain"
	"github.com/mindsai/account-api/internal/core/ports"
)

// UserHandler serves /users. Routes taking an :id are expected to sit behind
// the Auth and Owner guards, so the path id is the caller's own identity.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type signupRequest struct {
	Email    string `json:"email"  validate:"required,email"`
	Secret   string `json:"secret" validate:"required,secret"`
	Name     string `json:"name"   validate:"required"`
	Password string `json:"password,omitempty"`
}

type updateUserRequest struct {
	Email    *string `json:"email,omitempty"    validate:"omitempty,email"`
	Secret   *string `json:"secret,omitempty"   validate:"omitempty,secret"`
	Name     *string `json:"name,omitempty"     validate:"omitempty,min=1"`
	Password *string `json:"password,omitempty" validate:"omitempty,secret"`
}

// Signup creates a new account.
//
// @Summary      Sign up
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Secret == "" {
		req.Secret = req.Password
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Signup(c.Request().Context(), ports.SignupInput{
		Email:  req.Email,
		Secret: req.Secret,
		Name:   req.Name,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.SignupsTotal.WithLabelValues("conflict").Inc()
		} else {
			metrics.SignupsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.SignupsTotal.WithLabelValues("created").Inc()

	return c.JSON(http.StatusCreated, user)
}

// List returns every user profile.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns the caller's own profile.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := ownerID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update changes the caller's own profile.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := ownerID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Secret == nil {
		req.Secret = req.Password
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), id, ports.UpdateUserInput{
		Email:  req.Email,
		Secret: req.Secret,
		Name:   req.Name,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes the caller's own account.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := ownerID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// ownerID returns the authenticated identity. The Owner guard has already
// checked that it equals the :id path parameter.
func ownerID(c echo.Context) (domain.UserID, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	return id, nil
}
