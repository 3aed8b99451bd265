package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mindsai/account-api/internal/api/session"
	"github.com/mindsai/account-api/internal/core/domain"
	"github.com/mindsai/account-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, secret string) (*ports.LoginResult, error)
	logoutFn func(ctx context.Context, sess *domain.Session) error
}

func (s *stubAuthService) Login(ctx context.Context, email, secret string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, secret)
}

func (s *stubAuthService) Logout(ctx context.Context, sess *domain.Session) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, sess)
}

type stubTokens struct {
	sessions map[string]domain.Session
}

func (s stubTokens) Validate(token string) (domain.Session, error) {
	sess, ok := s.sessions[token]
	if !ok {
		return domain.Session{}, errors.New("invalid")
	}
	return sess, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newAuthHandler(auth ports.AuthService, users ports.UserService, tokens ports.TokenValidator) *AuthHandler {
	if tokens == nil {
		tokens = stubTokens{}
	}
	return NewAuthHandler(auth, users, session.NewTransport(false, 24*time.Hour), tokens, zerolog.Nop())
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, secret string) (*ports.LoginResult, error) {
			if email != "alice@example.com" || secret != "secret" {
				t.Fatalf("unexpected args: %s %s", email, secret)
			}
			return &ports.LoginResult{Token: "token123", User: domain.User{ID: 1, Email: email, Name: "Alice"}}, nil
		},
	}
	handler := newAuthHandler(stub, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"alice@example.com","secret":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.CookieName || cookies[0].Value != "token123" {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, leaked := resp["token"]; leaked {
		t.Fatalf("token must not be in the body")
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" || user["name"] != "Alice" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
}

func TestAuthHandler_Login_PasswordAlias(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, secret string) (*ports.LoginResult, error) {
			if secret != "legacy" {
				t.Fatalf("expected password alias to be used, got %q", secret)
			}
			return &ports.LoginResult{Token: "t", User: domain.User{ID: 1}}, nil
		},
	}
	handler := newAuthHandler(stub, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@x.com","password":"legacy"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := handler.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, secret string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := newAuthHandler(stub, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"alice@example.com","secret":"bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := handler.Login(e.NewContext(req, rec))
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie may be set on failure")
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, secret string) (*ports.LoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := newAuthHandler(stub, nil, nil)

	for _, body := range []string{"{", `{"email":"not-an-email","secret":"x"}`, `{"email":"a@x.com"}`} {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		err := handler.Login(e.NewContext(req, rec))
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestAuthHandler_Logout_WithoutCookie(t *testing.T) {
	e := newEcho()
	handler := newAuthHandler(&stubAuthService{
		logoutFn: func(ctx context.Context, sess *domain.Session) error {
			t.Fatalf("no session to revoke")
			return nil
		},
	}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()

	if err := handler.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.CookieName || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Logout_RevokesValidSession(t *testing.T) {
	e := newEcho()
	var revoked *domain.Session
	handler := newAuthHandler(&stubAuthService{
		logoutFn: func(ctx context.Context, sess *domain.Session) error {
			revoked = sess
			return errors.New("denylist down")
		},
	}, nil, stubTokens{sessions: map[string]domain.Session{"tok": {UserID: 4, TokenID: "jti"}}})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "tok"})
	rec := httptest.NewRecorder()

	if err := handler.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("logout must succeed even when revocation fails: %v", err)
	}
	if revoked == nil || revoked.TokenID != "jti" {
		t.Fatalf("expected session jti to be revoked, got %+v", revoked)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
