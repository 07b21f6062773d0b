package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "cod"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMomo         PaymentMethod = "momo"
	PaymentMethodZaloPay      PaymentMethod = "zalopay"
)

func ValidPaymentMethod(s string) bool {
	switch PaymentMethod(s) {
	case PaymentMethodCOD, PaymentMethodBankTransfer, PaymentMethodMomo, PaymentMethodZaloPay:
		return true
	}
	return false
}

type PaymentState string

const (
	PaymentStatePending    PaymentState = "pending"
	PaymentStateProcessing PaymentState = "processing"
	PaymentStateCompleted  PaymentState = "completed"
	PaymentStateFailed     PaymentState = "failed"
	PaymentStateCancelled  PaymentState = "cancelled"
)

// 支払い記録。1注文に履歴は複数持てるが、
// pending/processingの「アクティブな支払い」は同時に1件まで。
type Payment struct {
	ID                    string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID               string          `gorm:"type:uuid;not null;index" json:"order_id"`
	PaymentProvider       PaymentMethod   `gorm:"type:varchar(100)" json:"payment_provider"`
	ProviderTransactionID *string         `gorm:"type:varchar(255)" json:"provider_transaction_id"`
	Amount                decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency              string          `gorm:"type:varchar(10);not null;default:'VND'" json:"currency"`
	Status                PaymentState    `gorm:"type:varchar(50);not null" json:"status"`
	CreatedAt             time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
