package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /paymentsのHTTP
type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

// DI
func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type CreatePaymentRequest struct {
	OrderID       string `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
}

type ProcessPaymentRequest struct {
	TransactionID string `json:"transaction_id"`
}

// /payments を登録
func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/payments")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.createPayment)
	g.POST("/:id/process", h.processPayment)
	g.GET("/:id", h.getPaymentStatus)
	g.GET("/order/:order_id", h.listOrderPayments)
	g.POST("/:id/cancel", h.cancelPayment)
}

func (h *PaymentHandler) createPayment(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "unauthorized"})
	}

	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "invalid body"})
	}

	out, err := h.uc.CreatePayment(c.Request().Context(), userID, usecase.CreatePaymentInput{
		OrderID:       req.OrderID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}

	// 既存のアクティブな支払いはそのまま返す
	if out.Existing {
		return c.JSON(http.StatusOK, Response{Success: true, Message: "Payment already exists", Data: out})
	}

	return c.JSON(http.StatusCreated, Response{Success: true, Message: "Payment created successfully", Data: out})
}

func (h *PaymentHandler) processPayment(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "unauthorized"})
	}

	var req ProcessPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "invalid body"})
	}

	out, err := h.uc.ProcessPayment(c.Request().Context(), userID, c.Param("id"), req.TransactionID)
	if err != nil {
		return writeError(c, err)
	}

	msg := "Payment processed successfully"
	if out.AlreadyCompleted {
		msg = "Payment already completed"
	}

	return c.JSON(http.StatusOK, Response{Success: true, Message: msg, Data: out})
}

func (h *PaymentHandler) getPaymentStatus(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "unauthorized"})
	}

	out, err := h.uc.GetPaymentStatus(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, Response{Success: true, Data: out})
}

func (h *PaymentHandler) listOrderPayments(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "unauthorized"})
	}

	out, err := h.uc.ListOrderPayments(c.Request().Context(), userID, c.Param("order_id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, Response{Success: true, Data: out})
}

func (h *PaymentHandler) cancelPayment(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "unauthorized"})
	}

	if err := h.uc.CancelPayment(c.Request().Context(), userID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, Response{Success: true, Message: "Payment cancelled successfully"})
}
