package middleware

import (
	"net/http"

	"webshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// contextに入っているユーザーが管理者かどうかを確認する。
// SessionAuth→RequireLoginの後ろに置くこと。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON(usecase.CodeUnauthenticated, "not logged in"))
			}

			// 一般ユーザーは拒否、管理者だけ許可
			if !user.IsAdmin {
				return c.JSON(http.StatusForbidden, errorJSON(usecase.CodeForbidden, "admin only"))
			}

			return next(c)
		}
	}
}
