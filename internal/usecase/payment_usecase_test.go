package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPaymentTxMocks() (*TxManagerMock, *OrderRepoMock, *PaymentRepoMock) {
	orders := new(OrderRepoMock)
	payments := new(PaymentRepoMock)

	tx := &TxManagerMock{Repos: &TxReposMock{
		orders:   orders,
		payments: payments,
	}}
	return tx, orders, payments
}

// =====================
// CreatePayment
// =====================

// 代引きは即completedになり、注文もpaidへ
func TestPaymentUsecase_CreatePayment_CODAutoCompletes(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	orders.On("FindByIDForUser", ctx, "order-1", "user-1").Return(model.Order{
		ID:            "order-1",
		UserID:        "user-1",
		TotalAmount:   decimal.NewFromInt(230000),
		PaymentStatus: model.PaymentStatusUnpaid,
	}, nil)
	payments.On("FindActiveByOrderID", ctx, "order-1").Return(model.Payment{}, false, nil)

	payments.On("Create", ctx, mock.MatchedBy(func(p model.Payment) bool {
		return p.OrderID == "order-1" &&
			p.PaymentProvider == model.PaymentMethodCOD &&
			p.Amount.Equal(decimal.NewFromInt(230000)) &&
			p.Currency == "VND" &&
			p.Status == model.PaymentStateCompleted
	})).Return(model.Payment{
		ID:              "pay-1",
		OrderID:         "order-1",
		PaymentProvider: model.PaymentMethodCOD,
		Amount:          decimal.NewFromInt(230000),
		Currency:        "VND",
		Status:          model.PaymentStateCompleted,
	}, nil)

	orders.On("UpdatePaymentStatus", ctx, "order-1", model.PaymentStatusPaid).Return(nil)

	uc := usecase.NewPaymentUsecase(tx)
	out, err := uc.CreatePayment(ctx, "user-1", usecase.CreatePaymentInput{
		OrderID:       "order-1",
		PaymentMethod: "cod",
	})

	assert.NoError(t, err)
	assert.Equal(t, "pay-1", out.PaymentID)
	assert.Equal(t, "completed", out.Status)
	assert.False(t, out.Existing)
	assert.Empty(t, out.PaymentURL)

	orders.AssertExpectations(t)
	payments.AssertExpectations(t)
}

// 非codはpendingで作られ、processエンドポイントへ誘導される
func TestPaymentUsecase_CreatePayment_MomoStaysPending(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	orders.On("FindByIDForUser", ctx, "order-1", "user-1").Return(model.Order{
		ID:            "order-1",
		UserID:        "user-1",
		TotalAmount:   decimal.NewFromInt(500000),
		PaymentStatus: model.PaymentStatusUnpaid,
	}, nil)
	payments.On("FindActiveByOrderID", ctx, "order-1").Return(model.Payment{}, false, nil)

	payments.On("Create", ctx, mock.MatchedBy(func(p model.Payment) bool {
		return p.Status == model.PaymentStatePending
	})).Return(model.Payment{
		ID:              "pay-1",
		OrderID:         "order-1",
		PaymentProvider: model.PaymentMethodMomo,
		Amount:          decimal.NewFromInt(500000),
		Currency:        "VND",
		Status:          model.PaymentStatePending,
	}, nil)

	uc := usecase.NewPaymentUsecase(tx)
	out, err := uc.CreatePayment(ctx, "user-1", usecase.CreatePaymentInput{
		OrderID:       "order-1",
		PaymentMethod: "momo",
	})

	assert.NoError(t, err)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "/payments/pay-1/process", out.PaymentURL)

	//非codでは注文のpayment_statusは動かない
	orders.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

// アクティブな支払いが既にあれば同じものが返る
func TestPaymentUsecase_CreatePayment_ReturnsExistingActive(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	orders.On("FindByIDForUser", ctx, "order-1", "user-1").Return(model.Order{
		ID:            "order-1",
		UserID:        "user-1",
		TotalAmount:   decimal.NewFromInt(500000),
		PaymentStatus: model.PaymentStatusUnpaid,
	}, nil)

	payments.On("FindActiveByOrderID", ctx, "order-1").Return(model.Payment{
		ID:              "pay-1",
		OrderID:         "order-1",
		PaymentProvider: model.PaymentMethodBankTransfer,
		Amount:          decimal.NewFromInt(500000),
		Currency:        "VND",
		Status:          model.PaymentStatePending,
	}, true, nil)

	uc := usecase.NewPaymentUsecase(tx)
	out, err := uc.CreatePayment(ctx, "user-1", usecase.CreatePaymentInput{
		OrderID:       "order-1",
		PaymentMethod: "bank_transfer",
	})

	assert.NoError(t, err)
	assert.True(t, out.Existing)
	assert.Equal(t, "pay-1", out.PaymentID)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_CreatePayment_OrderAlreadyPaid(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	orders.On("FindByIDForUser", ctx, "order-1", "user-1").Return(model.Order{
		ID:            "order-1",
		UserID:        "user-1",
		PaymentStatus: model.PaymentStatusPaid,
	}, nil)

	uc := usecase.NewPaymentUsecase(tx)
	_, err := uc.CreatePayment(ctx, "user-1", usecase.CreatePaymentInput{
		OrderID:       "order-1",
		PaymentMethod: "cod",
	})

	assertHTTPError(t, err, http.StatusBadRequest, "Order is already paid")
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_CreatePayment_OrderNotOwned(t *testing.T) {
	ctx := context.Background()
	tx, orders, _ := newPaymentTxMocks()

	orders.On("FindByIDForUser", ctx, "order-1", "user-2").Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewPaymentUsecase(tx)
	_, err := uc.CreatePayment(ctx, "user-2", usecase.CreatePaymentInput{
		OrderID:       "order-1",
		PaymentMethod: "cod",
	})

	assertHTTPError(t, err, http.StatusNotFound, "Order not found")
}

func TestPaymentUsecase_CreatePayment_InvalidMethod(t *testing.T) {
	tx, _, _ := newPaymentTxMocks()
	uc := usecase.NewPaymentUsecase(tx)

	_, err := uc.CreatePayment(context.Background(), "user-1", usecase.CreatePaymentInput{
		OrderID:       "order-1",
		PaymentMethod: "paypal",
	})

	assertHTTPError(t, err, http.StatusBadRequest, "Invalid payment method")
}

func TestPaymentUsecase_CreatePayment_MissingFields(t *testing.T) {
	tx, _, _ := newPaymentTxMocks()
	uc := usecase.NewPaymentUsecase(tx)

	_, err := uc.CreatePayment(context.Background(), "user-1", usecase.CreatePaymentInput{
		PaymentMethod: "cod",
	})

	assertHTTPError(t, err, http.StatusBadRequest, "Order ID and payment method are required")
}

// =====================
// ProcessPayment
// =====================

// 確定は支払いのcompleted化と注文のpaid化が同時
func TestPaymentUsecase_ProcessPayment_CompletesAndMarksOrderPaid(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	payments.On("FindByID", ctx, "pay-1").Return(model.Payment{
		ID:      "pay-1",
		OrderID: "order-1",
		Status:  model.PaymentStatePending,
	}, nil)
	orders.On("FindByID", ctx, "order-1").Return(model.Order{
		ID:     "order-1",
		UserID: "user-1",
	}, nil)

	payments.On("MarkCompleted", ctx, "pay-1", "MOMO-abc123").Return(nil)
	orders.On("UpdatePaymentStatus", ctx, "order-1", model.PaymentStatusPaid).Return(nil)

	uc := usecase.NewPaymentUsecase(tx)
	out, err := uc.ProcessPayment(ctx, "user-1", "pay-1", "MOMO-abc123")

	assert.NoError(t, err)
	assert.Equal(t, "completed", out.Status)
	assert.Equal(t, "MOMO-abc123", out.TransactionID)
	payments.AssertExpectations(t)
	orders.AssertExpectations(t)
}

// 取引IDが無ければTXN-付きで合成される
func TestPaymentUsecase_ProcessPayment_SynthesizesTransactionID(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	payments.On("FindByID", ctx, "pay-1").Return(model.Payment{
		ID:      "pay-1",
		OrderID: "order-1",
		Status:  model.PaymentStatePending,
	}, nil)
	orders.On("FindByID", ctx, "order-1").Return(model.Order{ID: "order-1", UserID: "user-1"}, nil)

	payments.On("MarkCompleted", ctx, "pay-1", mock.MatchedBy(func(id string) bool {
		return strings.HasPrefix(id, "TXN-")
	})).Return(nil)
	orders.On("UpdatePaymentStatus", ctx, "order-1", model.PaymentStatusPaid).Return(nil)

	uc := usecase.NewPaymentUsecase(tx)
	out, err := uc.ProcessPayment(ctx, "user-1", "pay-1", "")

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.TransactionID, "TXN-"))
}

// completed済みの再processは何もしない
func TestPaymentUsecase_ProcessPayment_Idempotent(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	payments.On("FindByID", ctx, "pay-1").Return(model.Payment{
		ID:      "pay-1",
		OrderID: "order-1",
		Status:  model.PaymentStateCompleted,
	}, nil)
	orders.On("FindByID", ctx, "order-1").Return(model.Order{ID: "order-1", UserID: "user-1"}, nil)

	uc := usecase.NewPaymentUsecase(tx)
	out, err := uc.ProcessPayment(ctx, "user-1", "pay-1", "")

	assert.NoError(t, err)
	assert.True(t, out.AlreadyCompleted)
	payments.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentUsecase_ProcessPayment_FailedRejected(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	payments.On("FindByID", ctx, "pay-1").Return(model.Payment{
		ID:      "pay-1",
		OrderID: "order-1",
		Status:  model.PaymentStateFailed,
	}, nil)
	orders.On("FindByID", ctx, "order-1").Return(model.Order{ID: "order-1", UserID: "user-1"}, nil)

	uc := usecase.NewPaymentUsecase(tx)
	_, err := uc.ProcessPayment(ctx, "user-1", "pay-1", "")

	assertHTTPError(t, err, http.StatusBadRequest, "Payment has failed and cannot be processed")
}

// 支払いの所有チェックは403
func TestPaymentUsecase_ProcessPayment_WrongOwner(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	payments.On("FindByID", ctx, "pay-1").Return(model.Payment{
		ID:      "pay-1",
		OrderID: "order-1",
		Status:  model.PaymentStatePending,
	}, nil)
	orders.On("FindByID", ctx, "order-1").Return(model.Order{ID: "order-1", UserID: "user-1"}, nil)

	uc := usecase.NewPaymentUsecase(tx)
	_, err := uc.ProcessPayment(ctx, "user-2", "pay-1", "")

	assertHTTPError(t, err, http.StatusForbidden, "Unauthorized")
	payments.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything)
}

// =====================
// CancelPayment
// =====================

func TestPaymentUsecase_CancelPayment_PendingOnly(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	payments.On("FindByID", ctx, "pay-1").Return(model.Payment{
		ID:      "pay-1",
		OrderID: "order-1",
		Status:  model.PaymentStateProcessing,
	}, nil)
	orders.On("FindByID", ctx, "order-1").Return(model.Order{ID: "order-1", UserID: "user-1"}, nil)

	uc := usecase.NewPaymentUsecase(tx)
	err := uc.CancelPayment(ctx, "user-1", "pay-1")

	assertHTTPError(t, err, http.StatusBadRequest, "Only pending payments can be cancelled")
	payments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentUsecase_CancelPayment_Success(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	payments.On("FindByID", ctx, "pay-1").Return(model.Payment{
		ID:      "pay-1",
		OrderID: "order-1",
		Status:  model.PaymentStatePending,
	}, nil)
	orders.On("FindByID", ctx, "order-1").Return(model.Order{ID: "order-1", UserID: "user-1"}, nil)
	payments.On("UpdateStatus", ctx, "pay-1", model.PaymentStateCancelled).Return(nil)

	uc := usecase.NewPaymentUsecase(tx)
	err := uc.CancelPayment(ctx, "user-1", "pay-1")

	assert.NoError(t, err)
	payments.AssertExpectations(t)
}

// =====================
// GetPaymentStatus / ListOrderPayments
// =====================

func TestPaymentUsecase_GetPaymentStatus_IncludesOrderState(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	txn := "TXN-1700000000000"
	payments.On("FindByID", ctx, "pay-1").Return(model.Payment{
		ID:                    "pay-1",
		OrderID:               "order-1",
		PaymentProvider:       model.PaymentMethodCOD,
		ProviderTransactionID: &txn,
		Amount:                decimal.NewFromInt(230000),
		Currency:              "VND",
		Status:                model.PaymentStateCompleted,
	}, nil)
	orders.On("FindByID", ctx, "order-1").Return(model.Order{
		ID:            "order-1",
		UserID:        "user-1",
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPaid,
	}, nil)

	uc := usecase.NewPaymentUsecase(tx)
	out, err := uc.GetPaymentStatus(ctx, "user-1", "pay-1")

	assert.NoError(t, err)
	assert.Equal(t, "completed", out.Status)
	assert.Equal(t, "TXN-1700000000000", out.ProviderTransactionID)
	assert.Equal(t, "pending", out.OrderStatus)
	assert.Equal(t, "paid", out.OrderPaymentStatus)
}

func TestPaymentUsecase_ListOrderPayments_OrderNotOwned(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	orders.On("FindByIDForUser", ctx, "order-1", "user-2").Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewPaymentUsecase(tx)
	_, err := uc.ListOrderPayments(ctx, "user-2", "order-1")

	assertHTTPError(t, err, http.StatusNotFound, "Order not found")
	payments.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_ListOrderPayments_ReturnsHistory(t *testing.T) {
	ctx := context.Background()
	tx, orders, payments := newPaymentTxMocks()

	orders.On("FindByIDForUser", ctx, "order-1", "user-1").Return(model.Order{ID: "order-1", UserID: "user-1"}, nil)
	payments.On("ListByOrderID", ctx, "order-1").Return([]model.Payment{
		{ID: "pay-2", OrderID: "order-1", PaymentProvider: model.PaymentMethodMomo, Status: model.PaymentStateCancelled},
		{ID: "pay-1", OrderID: "order-1", PaymentProvider: model.PaymentMethodCOD, Status: model.PaymentStateCompleted},
	}, nil)

	uc := usecase.NewPaymentUsecase(tx)
	out, err := uc.ListOrderPayments(ctx, "user-1", "order-1")

	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "pay-2", out[0].PaymentID)
	assert.Equal(t, "cancelled", out[0].Status)
}
