package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /ordersのHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type PlaceOrderRequest struct {
	AddressID   string           `json:"address_id"`
	ShippingFee *decimal.Decimal `json:"shipping_fee"`
}

type AdminUpdateOrderRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
}

// /orders を登録。PUT /orders/:id だけ管理者専用。
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.placeOrder)
	g.GET("", h.listMyOrders)
	g.GET("/:id", h.getMyOrder)
	g.POST("/:id/cancel", h.cancelOrder)
	g.PUT("/:id", h.adminUpdateOrder, middleware.AdminRoleGuard())
}

func (h *OrderHandler) placeOrder(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "unauthorized"})
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "invalid body"})
	}

	// 省略時の送料
	fee := decimal.NewFromInt(30000)
	if req.ShippingFee != nil {
		fee = *req.ShippingFee
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		AddressID:   req.AddressID,
		ShippingFee: fee,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, Response{Success: true, Message: "Order created successfully", Data: out})
}

func (h *OrderHandler) listMyOrders(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID, c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, Response{Success: true, Data: out})
}

func (h *OrderHandler) getMyOrder(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "unauthorized"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, Response{Success: true, Data: out})
}

func (h *OrderHandler) cancelOrder(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "unauthorized"})
	}

	if err := h.uc.CancelOrder(c.Request().Context(), userID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, Response{Success: true, Message: "Order cancelled successfully"})
}

func (h *OrderHandler) adminUpdateOrder(c echo.Context) error {
	var req AdminUpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "invalid body"})
	}

	out, err := h.uc.AdminUpdateOrder(c.Request().Context(), c.Param("id"), usecase.AdminUpdateOrderInput{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, Response{Success: true, Message: "Order updated successfully", Data: out})
}
