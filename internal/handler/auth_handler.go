package handler

import (
	"net/http"
	"time"

	"webshop/internal/middleware"
	"webshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	cookieSecure bool
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/register", h.register)
	e.POST("/api/login", h.login)
	e.POST("/api/logout", h.logout)
	e.GET("/api/me", h.me)
	e.GET("/api/status", h.status)
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"fullname"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalcode"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Code: usecase.CodeInvalidInput})
	}

	user, side, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		UserAgent:  c.Request().UserAgent(),
		PriorToken: h.cookieToken(c),
	})
	if err != nil {
		return writeError(c, err)
	}

	// 登録と同時にログイン状態にする
	h.setSessionCookie(c, side.PlainToken, side.ExpiresAt)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":      true,
		"user_id": user.ID,
	})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Code: usecase.CodeInvalidInput})
	}

	_, side, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		UserAgent:  c.Request().UserAgent(),
		PriorToken: h.cookieToken(c),
	})
	if err != nil {
		return writeError(c, err)
	}

	h.setSessionCookie(c, side.PlainToken, side.ExpiresAt)

	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *AuthHandler) logout(c echo.Context) error {
	if token := h.cookieToken(c); token != "" {
		if err := h.uc.Logout(c.Request().Context(), token); err != nil {
			return writeError(c, err)
		}
	}

	h.clearSessionCookie(c)

	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return c.JSON(http.StatusOK, map[string]interface{}{"user": nil})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}

// 生存確認＋ログイン状態
func (h *AuthHandler) status(c echo.Context) error {
	_, loggedIn := middleware.UserFromContext(c)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":        true,
		"logged_in": loggedIn,
	})
}

func (h *AuthHandler) cookieToken(c echo.Context) string {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// セッショントークンをCookieにセット。JSからは読めない。
func (h *AuthHandler) setSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
