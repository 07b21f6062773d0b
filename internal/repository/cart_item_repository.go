package repository

import (
	"app/internal/domain/model"
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// カート表示・注文確定で使う、現在のカタログ情報を結合した明細ビュー。
// 非公開になった商品の行は含まれない。
type CartLineView struct {
	ItemID      string
	ProductID   string
	ProductName string
	SKU         string
	Price       decimal.Decimal
	SalePrice   decimal.NullDecimal
	Stock       int64
	BrandName   string
	ImageURL    string
	Quantity    int64
	AddedAt     time.Time
}

// 実売価格（セール価格があればそちら）
func (v CartLineView) EffectivePrice() decimal.Decimal {
	if v.SalePrice.Valid {
		return v.SalePrice.Decimal
	}
	return v.Price
}

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)

	//products/inventory/brandsを結合した表示用ビュー
	ListViewByCartID(ctx context.Context, cartID string) ([]CartLineView, error)

	FindByCartAndProduct(ctx context.Context, cartID string, productID string) (model.CartItem, bool, error)

	//同一商品は数量加算
	UpsertByCartAndProduct(ctx context.Context, cartID string, productID string, addQty int64) error

	UpdateQuantity(ctx context.Context, cartItemID string, qty int64) error

	// そのユーザーのカートに属する明細だけ返す。
	// 他人の明細はErrNotFound（存在も漏らさない）。
	FindForUser(ctx context.Context, cartItemID string, userID string) (model.CartItem, error)

	DeleteByID(ctx context.Context, cartItemID string) error
	DeleteByCartID(ctx context.Context, cartID string) error
}
