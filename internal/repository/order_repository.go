package repository

import (
	"app/internal/domain/model"
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 注文一覧の1行（明細数と配送先の要約つき）
type OrderSummary struct {
	ID            string
	TotalAmount   decimal.Decimal
	ShippingFee   decimal.Decimal
	Status        model.OrderStatus
	PaymentStatus model.PaymentStatus
	ItemCount     int64
	AddressLine   string
	City          string
	District      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (string, error)

	FindByID(ctx context.Context, orderID string) (model.Order, error)

	// 本人の注文だけ返す。他人の注文はErrNotFound。
	FindByIDForUser(ctx context.Context, orderID string, userID string) (model.Order, error)

	//statusは空なら絞り込みなし
	ListByUserID(ctx context.Context, userID string, status string) ([]OrderSummary, error)

	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID string, ps model.PaymentStatus) error

	// 管理用の直接更新。nilのフィールドは触らない。
	UpdateStatusFields(ctx context.Context, orderID string, status *model.OrderStatus, ps *model.PaymentStatus) (model.Order, error)
}
