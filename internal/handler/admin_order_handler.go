package handler

import (
	"net/http"

	"webshop/internal/middleware"
	"webshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/admin")
	g.Use(middleware.RequireLogin())
	g.Use(middleware.AdminRoleGuard())

	g.GET("/orders", h.list)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	orders, err := h.uc.ListOrdersWithItems(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"orders": orders})
}
