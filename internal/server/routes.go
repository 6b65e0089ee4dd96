package server

import (
	"net/http"

	"github.com/shibez0112/Ecommerce/internal/handler"

	"github.com/labstack/echo/v4"
)

// 各handlerが自分のルートを登録する
type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo, mw handler.Middlewares)
}

func RegisterRoutes(e *echo.Echo, mw handler.Middlewares, routes ...RouteRegistrar) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, r := range routes {
		r.RegisterRoutes(e, mw)
	}
}
