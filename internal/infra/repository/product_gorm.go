package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) FindByID(ctx context.Context, productID string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", productID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 公開中の商品だけ
func (r *ProductGormRepository) FindActiveByID(ctx context.Context, productID string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = TRUE", productID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// メイン画像URL（無ければ空文字）
func (r *ProductGormRepository) PrimaryImageURL(ctx context.Context, productID string) (string, error) {
	var url string
	err := r.db.WithContext(ctx).
		Model(&model.ProductImage{}).
		Select("url").
		Where("product_id = ? AND is_primary = TRUE", productID).
		Limit(1).
		Scan(&url).Error
	if err != nil {
		return "", err
	}
	return url, nil
}
