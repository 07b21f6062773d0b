package repository

import (
	"app/internal/domain/model"
	"context"
)

type AddressRepository interface {
	// 本人の住所だけ返す。他人の住所はErrNotFound。
	FindByIDForUser(ctx context.Context, addressID string, userID string) (model.Address, error)
}
