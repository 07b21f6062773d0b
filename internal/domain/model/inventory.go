package model

import "time"

// 商品ごとの在庫（1商品1行）。
// 数量を書き換えるのは注文確定の減算とキャンセルの戻しだけ。
type Inventory struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string    `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	Quantity  int64     `gorm:"not null;default:0" json:"quantity"`
	Location  string    `gorm:"type:varchar(255)" json:"location"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Inventory) TableName() string {
	return "inventory"
}
