package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string              `gorm:"type:uuid;primaryKey" json:"id"`
	SKU         string              `gorm:"type:varchar(100);uniqueIndex;column:sku" json:"sku"`
	Name        string              `gorm:"type:varchar(255);not null" json:"name"`
	Description string              `gorm:"type:text" json:"description"`
	Price       decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"price"`
	SalePrice   decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"sale_price"`
	BrandID     *string             `gorm:"type:uuid;index" json:"brand_id"`
	CategoryID  *string             `gorm:"type:uuid;index" json:"category_id"`
	WeightGrams *int                `json:"weight_grams"`
	IsActive    bool                `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time           `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 実売価格（セール価格があればそちら）
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.Valid {
		return p.SalePrice.Decimal
	}
	return p.Price
}
