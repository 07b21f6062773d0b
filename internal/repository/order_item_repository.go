package repository

import (
	"app/internal/domain/model"
	"context"
)

// 注文詳細の明細行（現在のメイン画像つき。画像は飾りで、スナップショットではない）
type OrderItemDetail struct {
	model.OrderItem
	ImageURL string
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
	ListDetailByOrderID(ctx context.Context, orderID string) ([]OrderItemDetail, error)
}
