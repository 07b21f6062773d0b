package model

import "time"

// 配送先住所
type Address struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	//「自宅」「会社」などの表示ラベル
	Label string `gorm:"type:varchar(100)" json:"label"`

	AddressLine string `gorm:"type:text" json:"address_line"`
	City        string `gorm:"type:varchar(100)" json:"city"`
	District    string `gorm:"type:varchar(100)" json:"district"`
	PostalCode  string `gorm:"type:varchar(20)" json:"postal_code"`
	Phone       string `gorm:"type:varchar(30)" json:"phone"`

	//このユーザーのデフォルト住所か
	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
