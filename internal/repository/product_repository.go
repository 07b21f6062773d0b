package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 商品カタログの読み取りだけを約束。
// このコアからは書き込まない。
type ProductRepository interface {
	FindByID(ctx context.Context, productID string) (model.Product, error)

	//公開中の商品だけ。非公開・削除済みはErrNotFound
	FindActiveByID(ctx context.Context, productID string) (model.Product, error)

	//注文詳細で使うメイン画像URL（無ければ空文字）
	PrimaryImageURL(ctx context.Context, productID string) (string, error)
}
