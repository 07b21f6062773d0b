package repository

import "context"

type InventoryRepository interface {
	//在庫行が無い商品は0
	GetQuantity(ctx context.Context, productID string) (int64, error)

	// 在庫が足りるときだけ減算（1文の条件付きUPDATE）。
	// falseは「足りなかった」で、エラーではない。
	DecreaseStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error)

	// 在庫戻し（キャンセル）
	IncreaseStock(ctx context.Context, productID string, qty int64) error
}
