package model

type ProductImage struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string `gorm:"type:uuid;not null;index" json:"product_id"`
	URL       string `gorm:"type:text;not null" json:"url"`
	IsPrimary bool   `gorm:"not null;default:false" json:"is_primary"`
	Position  int    `gorm:"not null;default:0" json:"position"`
}
