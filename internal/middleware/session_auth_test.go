package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"webshop/internal/middleware"
	"webshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// トークン→ユーザーの対応を固定したResolver
type stubResolver struct {
	users map[string]*usecase.UserView
	err   error
}

func (r *stubResolver) CurrentUser(ctx context.Context, token string) (*usecase.UserView, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users[token], nil
}

func newTestContext(t *testing.T, cookie string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// =====================
// SessionAuth
// =====================

func TestSessionAuth_NoCookie_PassesThroughWithoutUser(t *testing.T) {
	resolver := &stubResolver{users: map[string]*usecase.UserView{}}
	c, rec := newTestContext(t, "")

	err := middleware.SessionAuth(resolver)(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, ok := middleware.UserFromContext(c)
	assert.False(t, ok)
}

func TestSessionAuth_ValidCookie_SetsUser(t *testing.T) {
	resolver := &stubResolver{users: map[string]*usecase.UserView{
		"good-token": {ID: 7, Email: "anna@example.com"},
	}}
	c, rec := newTestContext(t, "good-token")

	err := middleware.SessionAuth(resolver)(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	user, ok := middleware.UserFromContext(c)
	if assert.True(t, ok) {
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, "anna@example.com", user.Email)
	}
}

func TestSessionAuth_UnknownToken_PassesThroughWithoutUser(t *testing.T) {
	resolver := &stubResolver{users: map[string]*usecase.UserView{}}
	c, _ := newTestContext(t, "stale-token")

	err := middleware.SessionAuth(resolver)(okHandler)(c)
	assert.NoError(t, err)

	_, ok := middleware.UserFromContext(c)
	assert.False(t, ok)
}

func TestSessionAuth_ResolverError_DoesNotBlockRequest(t *testing.T) {
	resolver := &stubResolver{err: errors.New("db down")}
	c, rec := newTestContext(t, "whatever")

	err := middleware.SessionAuth(resolver)(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, ok := middleware.UserFromContext(c)
	assert.False(t, ok)
}

// =====================
// RequireLogin
// =====================

func TestRequireLogin_WithoutUser_Returns401(t *testing.T) {
	c, rec := newTestContext(t, "")

	err := middleware.RequireLogin()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.CodeUnauthenticated)
}

func TestRequireLogin_WithUser_CallsNext(t *testing.T) {
	c, rec := newTestContext(t, "")
	c.Set(middleware.CtxUserKey, &usecase.UserView{ID: 1})

	err := middleware.RequireLogin()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// =====================
// AdminRoleGuard
// =====================

func TestAdminRoleGuard_WithoutUser_Returns401(t *testing.T) {
	c, rec := newTestContext(t, "")

	err := middleware.AdminRoleGuard()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard_RegularUser_Returns403(t *testing.T) {
	c, rec := newTestContext(t, "")
	c.Set(middleware.CtxUserKey, &usecase.UserView{ID: 1, IsAdmin: false})

	err := middleware.AdminRoleGuard()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.CodeForbidden)
}

func TestAdminRoleGuard_Admin_CallsNext(t *testing.T) {
	c, rec := newTestContext(t, "")
	c.Set(middleware.CtxUserKey, &usecase.UserView{ID: 1, IsAdmin: true})

	err := middleware.AdminRoleGuard()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
