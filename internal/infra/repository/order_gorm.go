package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (string, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return "", err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 本人の注文だけ。他人の注文は「存在しない扱い」にする。
func (r *OrderGormRepository) FindByIDForUser(ctx context.Context, orderID string, userID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 明細数と配送先要約つきの一覧
func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID string, status string) ([]repo.OrderSummary, error) {
	q := r.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.id,
			o.total_amount,
			o.shipping_fee,
			o.status,
			o.payment_status,
			o.created_at,
			o.updated_at,
			COUNT(oi.id) AS item_count,
			COALESCE(a.address_line, '') AS address_line,
			COALESCE(a.city, '') AS city,
			COALESCE(a.district, '') AS district`).
		Joins("LEFT JOIN order_items oi ON oi.order_id = o.id").
		Joins("LEFT JOIN addresses a ON a.id = o.address_id").
		Where("o.user_id = ?", userID)

	if status != "" {
		q = q.Where("o.status = ?", status)
	}

	var rows []repo.OrderSummary
	err := q.
		Group("o.id, a.address_line, a.city, a.district").
		Order("o.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return []repo.OrderSummary{}, err
	}
	return rows, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) UpdatePaymentStatus(ctx context.Context, orderID string, ps model.PaymentStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", ps)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 管理用の直接更新。nilのフィールドは触らない。
func (r *OrderGormRepository) UpdateStatusFields(ctx context.Context, orderID string, status *model.OrderStatus, ps *model.PaymentStatus) (model.Order, error) {
	updates := map[string]interface{}{}
	if status != nil {
		updates["status"] = *status
	}
	if ps != nil {
		updates["payment_status"] = *ps
	}

	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(updates)

	if res.Error != nil {
		return model.Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Order{}, repo.ErrNotFound
	}

	return r.FindByID(ctx, orderID)
}
