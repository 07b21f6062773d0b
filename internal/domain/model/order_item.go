package model

import "github.com/shopspring/decimal"

// 注文明細。購入時点の商品名・単価のスナップショットで、作成後は不変。
// 商品が改名・値上げされても過去の注文は変わらない。
type OrderItem struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   string          `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255)" json:"product_name"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
}
