package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		items[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

// 現在のメイン画像つきの明細（画像は飾り。スナップショットではない）
func (r *OrderItemGormRepository) ListDetailByOrderID(ctx context.Context, orderID string) ([]repo.OrderItemDetail, error) {
	var rows []repo.OrderItemDetail
	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select(`oi.*,
			COALESCE((SELECT url FROM product_images WHERE product_id = oi.product_id AND is_primary = TRUE LIMIT 1), '') AS image_url`).
		Where("oi.order_id = ?", orderID).
		Scan(&rows).Error
	if err != nil {
		return []repo.OrderItemDetail{}, err
	}
	return rows, nil
}
