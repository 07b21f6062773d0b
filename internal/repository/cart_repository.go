package repository

import (
	"app/internal/domain/model"
	"context"
)

type CartRepository interface {
	//無ければ空カートを作って返す
	GetOrCreateByUserID(ctx context.Context, userID string) (model.Cart, error)
	FindByUserID(ctx context.Context, userID string) (model.Cart, error)
}
