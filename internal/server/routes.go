package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, cartH *handler.CartHandler, orderH *handler.OrderHandler, paymentH *handler.PaymentHandler) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	cartH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)
	paymentH.RegisterRoutes(e, cfg)
}
