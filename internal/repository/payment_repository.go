package repository

import (
	"app/internal/domain/model"
	"context"
)

type PaymentRepository interface {
	Create(ctx context.Context, p model.Payment) (model.Payment, error)

	FindByID(ctx context.Context, paymentID string) (model.Payment, error)

	//pending/processingの支払い（アクティブは1注文1件まで）
	FindActiveByOrderID(ctx context.Context, orderID string) (model.Payment, bool, error)

	ListByOrderID(ctx context.Context, orderID string) ([]model.Payment, error)

	MarkCompleted(ctx context.Context, paymentID string, providerTransactionID string) error
	UpdateStatus(ctx context.Context, paymentID string, status model.PaymentState) error
}
