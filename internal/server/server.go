package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New はルーティング済みのechoを返す。
func New(cfg config.Config, cartH *handler.CartHandler, orderH *handler.OrderHandler, paymentH *handler.PaymentHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	RegisterRoutes(e, cfg, cartH, orderH, paymentH)
	return e
}

// Server起動
func Start(addr string, e *echo.Echo) error {
	return e.Start(addr)
}
