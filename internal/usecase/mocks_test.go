package usecase_test

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	Repos repo.TxRepos

	// WithinTx 自体を失敗させたいとき用
	Err error
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	if m.Err != nil {
		return m.Err
	}
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	inventory  repo.InventoryRepository
	products   repo.ProductRepository
	payments   repo.PaymentRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *TxReposMock) Payments() repo.PaymentRepository     { return r.payments }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUser(ctx context.Context, orderID string, userID string) (model.Order, error) {
	args := m.Called(ctx, orderID, userID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID string, status string) ([]repo.OrderSummary, error) {
	args := m.Called(ctx, userID, status)
	rows, _ := args.Get(0).([]repo.OrderSummary)
	return rows, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdatePaymentStatus(ctx context.Context, orderID string, ps model.PaymentStatus) error {
	args := m.Called(ctx, orderID, ps)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatusFields(ctx context.Context, orderID string, status *model.OrderStatus, ps *model.PaymentStatus) (model.Order, error) {
	args := m.Called(ctx, orderID, status, ps)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) ListDetailByOrderID(ctx context.Context, orderID string) ([]repo.OrderItemDetail, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]repo.OrderItemDetail)
	return items, args.Error(1)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) ListViewByCartID(ctx context.Context, cartID string) ([]repo.CartLineView, error) {
	args := m.Called(ctx, cartID)
	lines, _ := args.Get(0).([]repo.CartLineView)
	return lines, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartAndProduct(ctx context.Context, cartID string, productID string) (model.CartItem, bool, error) {
	args := m.Called(ctx, cartID, productID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Bool(1), args.Error(2)
}

func (m *CartItemRepoMock) UpsertByCartAndProduct(ctx context.Context, cartID string, productID string, addQty int64) error {
	args := m.Called(ctx, cartID, productID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID string, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) FindForUser(ctx context.Context, cartItemID string, userID string) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID, userID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID string) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByCartID(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) GetQuantity(ctx context.Context, productID string) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID string, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, productID string) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindActiveByID(ctx context.Context, productID string) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) PrimaryImageURL(ctx context.Context, productID string) (string, error) {
	args := m.Called(ctx, productID)
	return args.String(0), args.Error(1)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Payment)
	return created, args.Error(1)
}

func (m *PaymentRepoMock) FindByID(ctx context.Context, paymentID string) (model.Payment, error) {
	args := m.Called(ctx, paymentID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) FindActiveByOrderID(ctx context.Context, orderID string) (model.Payment, bool, error) {
	args := m.Called(ctx, orderID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Bool(1), args.Error(2)
}

func (m *PaymentRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.Payment, error) {
	args := m.Called(ctx, orderID)
	ps, _ := args.Get(0).([]model.Payment)
	return ps, args.Error(1)
}

func (m *PaymentRepoMock) MarkCompleted(ctx context.Context, paymentID string, providerTransactionID string) error {
	args := m.Called(ctx, paymentID, providerTransactionID)
	return args.Error(0)
}

func (m *PaymentRepoMock) UpdateStatus(ctx context.Context, paymentID string, status model.PaymentState) error {
	args := m.Called(ctx, paymentID, status)
	return args.Error(0)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) FindByIDForUser(ctx context.Context, addressID string, userID string) (model.Address, error) {
	args := m.Called(ctx, addressID, userID)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}
