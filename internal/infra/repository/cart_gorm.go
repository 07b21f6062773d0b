package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepositoryとCartItemRepositoryの両方を実装する。
type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカートを取得し、無ければ作成
func (r *CartGormRepository) GetOrCreateByUserID(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart

	//トランザクションで探す→無ければ作る
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&cart).Error

		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		newCart := model.Cart{
			ID:     uuid.NewString(),
			UserID: userID,
		}

		if err := tx.Create(&newCart).Error; err != nil {
			//user_idのunique制約に負けたら作られた方を返す
			retryErr := tx.Where("user_id = ?", userID).First(&cart).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		cart = newCart
		return nil
	})

	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// カート明細を一覧取得
func (r *CartGormRepository) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("added_at asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// 現在のカタログ情報（価格・セール価格・在庫・ブランド・画像）を
// 結合した表示用ビュー。非公開商品の行は落とす。
func (r *CartGormRepository) ListViewByCartID(ctx context.Context, cartID string) ([]repo.CartLineView, error) {
	var rows []repo.CartLineView

	err := r.db.WithContext(ctx).
		Table("cart_items AS ci").
		Select(`ci.id AS item_id,
			ci.product_id,
			p.name AS product_name,
			p.sku,
			p.price,
			p.sale_price,
			COALESCE(i.quantity, 0) AS stock,
			COALESCE(b.name, '') AS brand_name,
			COALESCE((SELECT url FROM product_images WHERE product_id = p.id AND is_primary = TRUE LIMIT 1), '') AS image_url,
			ci.quantity,
			ci.added_at`).
		Joins("JOIN products p ON p.id = ci.product_id").
		Joins("LEFT JOIN inventory i ON i.product_id = p.id").
		Joins("LEFT JOIN brands b ON b.id = p.brand_id").
		Where("ci.cart_id = ? AND p.is_active = TRUE", cartID).
		Order("ci.added_at DESC").
		Scan(&rows).Error

	if err != nil {
		return []repo.CartLineView{}, err
	}
	return rows, nil
}

func (r *CartGormRepository) FindByCartAndProduct(ctx context.Context, cartID string, productID string) (model.CartItem, bool, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, false, nil
	}
	if err != nil {
		return model.CartItem{}, false, err
	}
	return item, true, nil
}

// 同一商品は数量加算
func (r *CartGormRepository) UpsertByCartAndProduct(ctx context.Context, cartID string, productID string, addQty int64) error {
	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&item).Error

		if err == nil {
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", item.Quantity+addQty)

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		newItem := model.CartItem{
			ID:        uuid.NewString(),
			CartID:    cartID,
			ProductID: productID,
			Quantity:  addQty,
		}
		return tx.Create(&newItem).Error
	})
}

// 明細の数量を更新
func (r *CartGormRepository) UpdateQuantity(ctx context.Context, cartItemID string, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", cartItemID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// そのユーザーのカートに属する明細だけ返す
func (r *CartGormRepository) FindForUser(ctx context.Context, cartItemID string, userID string) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.*").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", cartItemID, userID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// 明細を削除
func (r *CartGormRepository) DeleteByID(ctx context.Context, cartItemID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", cartItemID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 指定カートの明細を全削除（0件でもエラーにしない）
func (r *CartGormRepository) DeleteByCartID(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}
