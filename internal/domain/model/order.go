package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 有効な注文ステータスか
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipping,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusUnpaid, PaymentStatusPaid:
		return true
	}
	return false
}

// 注文。total_amountは作成時に確定し、以後は再計算しない。
// 可変なのはstatusとpayment_statusだけ。
type Order struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	AddressID     string          `gorm:"type:uuid;not null" json:"address_id"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	ShippingFee   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"shipping_fee"`
	Status        OrderStatus     `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(50);not null;default:'unpaid'" json:"payment_status"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
