package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// CartUsecase は /cart の業務ロジックです。
// 在庫チェックはカタログではなくinventoryを見る。
type CartUsecase struct {
	cartRepo      repo.CartRepository
	cartItemRepo  repo.CartItemRepository
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// カート明細（現在のカタログ情報で表示する）
type CartItemResponse struct {
	ID          string              `json:"id"`
	ProductID   string              `json:"product_id"`
	ProductName string              `json:"product_name"`
	SKU         string              `json:"sku"`
	Price       decimal.Decimal     `json:"price"`
	SalePrice   decimal.NullDecimal `json:"sale_price"`
	Stock       int64               `json:"stock"`
	BrandName   string              `json:"brand_name"`
	ImageURL    string              `json:"image_url"`
	Quantity    int64               `json:"quantity"`
	AddedAt     time.Time           `json:"added_at"`
}

type CartResponse struct {
	CartID    string             `json:"cart_id"`
	Items     []CartItemResponse `json:"items"`
	Subtotal  string             `json:"subtotal"`
	ItemCount int                `json:"item_count"`
}

type AddCartInput struct {
	ProductID string
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（無ければ空で作って返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Failed to get cart")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID string, in AddCartInput) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID == "" {
		return NewHTTPError(http.StatusBadRequest, "Product ID is required")
	}
	if in.Quantity < 1 {
		return NewHTTPError(http.StatusBadRequest, "Quantity must be at least 1")
	}

	//商品チェック（公開中のみ）
	_, err := u.productRepo.FindActiveByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Product not found or inactive")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to add item to cart")
	}

	stock, err := u.inventoryRepo.GetQuantity(ctx, in.ProductID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to add item to cart")
	}

	//カート取得（無ければ作成）
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to add item to cart")
	}

	// 既存行との合算数量で在庫チェックする
	existing, found, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, in.ProductID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to add item to cart")
	}

	newQty := in.Quantity
	if found {
		newQty += existing.Quantity
	}
	if newQty > stock {
		return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Only %d items in stock", stock))
	}

	if err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to add item to cart")
	}

	return nil
}

// 数量変更（所有チェック＋在庫チェック）。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID string, cartItemID string, in UpdateCartItemInput) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return NewHTTPError(http.StatusBadRequest, "Quantity must be at least 1")
	}

	item, err := u.cartItemRepo.FindForUser(ctx, cartItemID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to update cart item")
	}

	stock, err := u.inventoryRepo.GetQuantity(ctx, item.ProductID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to update cart item")
	}
	if in.Quantity > stock {
		return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Only %d items in stock", stock))
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Cart item not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "Failed to update cart item")
	}

	return nil
}

// 明細削除
func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID string, cartItemID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if _, err := u.cartItemRepo.FindForUser(ctx, cartItemID, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Cart item not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "Failed to remove cart item")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Cart item not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "Failed to remove cart item")
	}

	return nil
}

// 全明細クリア。カートが無くても成功扱い。
func (u *CartUsecase) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to clear cart")
	}

	if err := u.cartItemRepo.DeleteByCartID(ctx, cart.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to clear cart")
	}
	return nil
}

// 現在のカタログ情報で明細を組み立てる。
// subtotal = Σ(実売価格 × 数量)。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID string) (CartResponse, error) {
	lines, err := u.cartItemRepo.ListViewByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Failed to get cart")
	}

	items := make([]CartItemResponse, 0, len(lines))
	subtotal := decimal.Zero

	for _, l := range lines {
		items = append(items, CartItemResponse{
			ID:          l.ItemID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			SKU:         l.SKU,
			Price:       l.Price,
			SalePrice:   l.SalePrice,
			Stock:       l.Stock,
			BrandName:   l.BrandName,
			ImageURL:    l.ImageURL,
			Quantity:    l.Quantity,
			AddedAt:     l.AddedAt,
		})

		subtotal = subtotal.Add(l.EffectivePrice().Mul(decimal.NewFromInt(l.Quantity)))
	}

	return CartResponse{
		CartID:    cartID,
		Items:     items,
		Subtotal:  subtotal.StringFixed(2),
		ItemCount: len(items),
	}, nil
}
