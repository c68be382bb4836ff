package middleware

import (
	"context"
	"net/http"

	"webshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	// セッションCookieの名前
	SessionCookieName = "session_token"

	// echo contextに入れるキー（*usecase.UserView）
	CtxUserKey = "current_user"
)

// トークンからユーザーを引く約束（実体はAuthUsecase）
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*usecase.UserView, error)
}

// SessionAuth はCookieのセッショントークンを毎リクエストDBで解決する。
// 未ログインでもエラーにはしない（ガードはRequireLogin側）。
func SessionAuth(resolver UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			user, err := resolver.CurrentUser(c.Request().Context(), cookie.Value)
			if err != nil {
				// DBが落ちている等。未ログイン扱いで通す。
				return next(c)
			}
			if user != nil {
				c.Set(CtxUserKey, user)
			}

			return next(c)
		}
	}
}

// ログイン必須のルート用
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := UserFromContext(c); !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON(usecase.CodeUnauthenticated, "not logged in"))
			}
			return next(c)
		}
	}
}

// contextからログインユーザーを取り出す
func UserFromContext(c echo.Context) (*usecase.UserView, bool) {
	user, ok := c.Get(CtxUserKey).(*usecase.UserView)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func errorJSON(code string, msg string) errorResponse {
	return errorResponse{Error: msg, Code: code}
}
