package model

import "time"

// カートの明細
// 同じ商品は1行にまとめて数量加算する。
type CartItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CartID    string    `gorm:"type:uuid;not null;index" json:"cart_id"`
	ProductID string    `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int64     `gorm:"not null;default:1" json:"quantity"`
	AddedAt   time.Time `gorm:"not null;autoCreateTime" json:"added_at"`
}
