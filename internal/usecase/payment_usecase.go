package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// PaymentUsecase は注文に対する支払いの作成・確定・照会。
// 支払い作成と注文のpayment_status更新は必ず同じトランザクション。
type PaymentUsecase struct {
	tx repo.TransactionManager
}

func NewPaymentUsecase(tx repo.TransactionManager) *PaymentUsecase {
	return &PaymentUsecase{tx: tx}
}

type CreatePaymentInput struct {
	OrderID       string
	PaymentMethod string
}

type PaymentOutput struct {
	PaymentID             string          `json:"payment_id"`
	OrderID               string          `json:"order_id"`
	Amount                decimal.Decimal `json:"amount"`
	Currency              string          `json:"currency"`
	Status                string          `json:"status"`
	PaymentMethod         string          `json:"payment_method"`
	ProviderTransactionID string          `json:"provider_transaction_id,omitempty"`
	PaymentURL            string          `json:"payment_url,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`

	//既存のアクティブな支払いを返したか（handlerが201/200を選ぶ用）
	Existing bool `json:"-"`
}

type PaymentStatusOutput struct {
	PaymentID             string          `json:"payment_id"`
	OrderID               string          `json:"order_id"`
	Amount                decimal.Decimal `json:"amount"`
	Currency              string          `json:"currency"`
	Status                string          `json:"status"`
	PaymentProvider       string          `json:"payment_provider"`
	ProviderTransactionID string          `json:"provider_transaction_id,omitempty"`
	OrderStatus           string          `json:"order_status"`
	OrderPaymentStatus    string          `json:"order_payment_status"`
	CreatedAt             time.Time       `json:"created_at"`
}

type ProcessPaymentOutput struct {
	PaymentID     string `json:"payment_id"`
	OrderID       string `json:"order_id"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`

	//すでにcompletedだったか（handlerのメッセージ用）
	AlreadyCompleted bool `json:"-"`
}

// CreatePayment は注文への支払いを作る。
// すでにpending/processingの支払いがあればそれをそのまま返す（重複防止）。
// 代引き（cod）は即completedになり、注文もpaidへ。
func (u *PaymentUsecase) CreatePayment(ctx context.Context, userID string, in CreatePaymentInput) (PaymentOutput, error) {
	if userID == "" {
		return PaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.OrderID == "" || in.PaymentMethod == "" {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "Order ID and payment method are required")
	}
	if !model.ValidPaymentMethod(in.PaymentMethod) {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid payment method")
	}

	method := model.PaymentMethod(in.PaymentMethod)

	var out PaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//注文の存在＋所有チェック（他人の注文は404）
		o, err := r.Orders().FindByIDForUser(ctx, in.OrderID, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create payment")
		}

		if o.PaymentStatus == model.PaymentStatusPaid {
			return NewHTTPError(http.StatusBadRequest, "Order is already paid")
		}

		// アクティブな支払いが既にあれば同じものを返す
		existing, found, err := r.Payments().FindActiveByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create payment")
		}
		if found {
			out = toPaymentOutput(existing, method)
			out.Existing = true
			return nil
		}

		//codは即completed
		status := model.PaymentStatePending
		if method == model.PaymentMethodCOD {
			status = model.PaymentStateCompleted
		}

		p, err := r.Payments().Create(ctx, model.Payment{
			OrderID:         o.ID,
			PaymentProvider: method,
			Amount:          o.TotalAmount,
			Currency:        "VND",
			Status:          status,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create payment")
		}

		if method == model.PaymentMethodCOD {
			if err := r.Orders().UpdatePaymentStatus(ctx, o.ID, model.PaymentStatusPaid); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Failed to create payment")
			}
		}

		out = toPaymentOutput(p, method)
		return nil
	})

	if err != nil {
		return PaymentOutput{}, err
	}
	return out, nil
}

// ProcessPayment は支払いを確定させる（ゲートウェイ連携の代わり）。
// completed済みならそのまま成功、failedは処理不可。
func (u *PaymentUsecase) ProcessPayment(ctx context.Context, userID string, paymentID string, providerTransactionID string) (ProcessPaymentOutput, error) {
	if userID == "" {
		return ProcessPaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if paymentID == "" {
		return ProcessPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out ProcessPaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, paymentID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Payment not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to process payment")
		}

		o, err := r.Orders().FindByID(ctx, p.OrderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to process payment")
		}

		//支払いの所有違反だけは404ではなく403
		if o.UserID != userID {
			return NewHTTPError(http.StatusForbidden, "Unauthorized")
		}

		if p.Status == model.PaymentStateCompleted {
			out = ProcessPaymentOutput{
				PaymentID:        p.ID,
				OrderID:          p.OrderID,
				Status:           string(model.PaymentStateCompleted),
				AlreadyCompleted: true,
			}
			return nil
		}
		if p.Status == model.PaymentStateFailed {
			return NewHTTPError(http.StatusBadRequest, "Payment has failed and cannot be processed")
		}

		//取引IDが無ければ合成する
		txnID := providerTransactionID
		if txnID == "" {
			txnID = fmt.Sprintf("TXN-%d", time.Now().UnixMilli())
		}

		if err := r.Payments().MarkCompleted(ctx, p.ID, txnID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to process payment")
		}
		if err := r.Orders().UpdatePaymentStatus(ctx, p.OrderID, model.PaymentStatusPaid); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to process payment")
		}

		out = ProcessPaymentOutput{
			PaymentID:     p.ID,
			OrderID:       p.OrderID,
			Status:        string(model.PaymentStateCompleted),
			TransactionID: txnID,
		}
		return nil
	})

	if err != nil {
		return ProcessPaymentOutput{}, err
	}
	return out, nil
}

// 支払い状況の照会
func (u *PaymentUsecase) GetPaymentStatus(ctx context.Context, userID string, paymentID string) (PaymentStatusOutput, error) {
	if userID == "" {
		return PaymentStatusOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if paymentID == "" {
		return PaymentStatusOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out PaymentStatusOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, paymentID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Payment not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to get payment status")
		}

		o, err := r.Orders().FindByID(ctx, p.OrderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to get payment status")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusForbidden, "Unauthorized")
		}

		out = PaymentStatusOutput{
			PaymentID:          p.ID,
			OrderID:            p.OrderID,
			Amount:             p.Amount,
			Currency:           p.Currency,
			Status:             string(p.Status),
			PaymentProvider:    string(p.PaymentProvider),
			OrderStatus:        string(o.Status),
			OrderPaymentStatus: string(o.PaymentStatus),
			CreatedAt:          p.CreatedAt,
		}
		if p.ProviderTransactionID != nil {
			out.ProviderTransactionID = *p.ProviderTransactionID
		}
		return nil
	})

	if err != nil {
		return PaymentStatusOutput{}, err
	}
	return out, nil
}

// 注文の支払い履歴（新しい順）
func (u *PaymentUsecase) ListOrderPayments(ctx context.Context, userID string, orderID string) ([]PaymentOutput, error) {
	if userID == "" {
		return []PaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return []PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var outs []PaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//一覧は注文側の所有チェック（他人の注文は404）
		if _, err := r.Orders().FindByIDForUser(ctx, orderID, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "Failed to get order payments")
		}

		payments, err := r.Payments().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to get order payments")
		}

		outs = make([]PaymentOutput, 0, len(payments))
		for _, p := range payments {
			outs = append(outs, toPaymentOutput(p, p.PaymentProvider))
		}
		return nil
	})

	if err != nil {
		return []PaymentOutput{}, err
	}
	return outs, nil
}

// CancelPayment はpendingの支払いだけキャンセルできる。
func (u *PaymentUsecase) CancelPayment(ctx context.Context, userID string, paymentID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if paymentID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, paymentID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Payment not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to cancel payment")
		}

		o, err := r.Orders().FindByID(ctx, p.OrderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to cancel payment")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusForbidden, "Unauthorized")
		}

		if p.Status != model.PaymentStatePending {
			return NewHTTPError(http.StatusBadRequest, "Only pending payments can be cancelled")
		}

		if err := r.Payments().UpdateStatus(ctx, p.ID, model.PaymentStateCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to cancel payment")
		}
		return nil
	})
}

func toPaymentOutput(p model.Payment, method model.PaymentMethod) PaymentOutput {
	out := PaymentOutput{
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        string(p.Status),
		PaymentMethod: string(method),
		CreatedAt:     p.CreatedAt,
	}
	if p.ProviderTransactionID != nil {
		out.ProviderTransactionID = *p.ProviderTransactionID
	}

	//cod以外はprocessエンドポイントへ誘導する
	if method != model.PaymentMethodCOD && p.Status == model.PaymentStatePending {
		out.PaymentURL = fmt.Sprintf("/payments/%s/process", p.ID)
	}
	return out
}
