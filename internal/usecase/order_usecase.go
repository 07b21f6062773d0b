package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	addresses repo.AddressRepository
}

func NewOrderUsecase(tx repo.TransactionManager, addresses repo.AddressRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, addresses: addresses}
}

type PlaceOrderInput struct {
	AddressID   string
	ShippingFee decimal.Decimal
}

// POST /orders の結果
type OrderCreatedOutput struct {
	OrderID     string          `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
}

type OrderSummaryOutput struct {
	ID            string          `json:"id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ShippingFee   decimal.Decimal `json:"shipping_fee"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	ItemCount     int64           `json:"item_count"`
	AddressLine   string          `json:"address_line"`
	City          string          `json:"city"`
	District      string          `json:"district"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type OrderItemOutput struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	ImageURL    string          `json:"image_url"`
}

type OrderDetailOutput struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	AddressID     string            `json:"address_id"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	ShippingFee   decimal.Decimal   `json:"shipping_fee"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Address       *model.Address    `json:"address,omitempty"`
	Items         []OrderItemOutput `json:"items"`
}

// PlaceOrder はカートの中身を注文に変換する。
// 明細スナップショット・在庫減算・カートクリアは1トランザクション。
// どこかで失敗したら全部ロールバックして、部分的な注文は残さない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (OrderCreatedOutput, error) {
	if userID == "" {
		return OrderCreatedOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.AddressID == "" {
		return OrderCreatedOutput{}, NewHTTPError(http.StatusBadRequest, "Address is required")
	}
	if in.ShippingFee.IsNegative() {
		return OrderCreatedOutput{}, NewHTTPError(http.StatusBadRequest, "invalid shipping_fee")
	}

	//住所の存在確認＋所有チェック（他人の住所は404）
	_, err := u.addresses.FindByIDForUser(ctx, in.AddressID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderCreatedOutput{}, NewHTTPError(http.StatusNotFound, "Address not found")
	}
	if err != nil {
		return OrderCreatedOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to create order")
	}

	var out OrderCreatedOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusBadRequest, "Cart is empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create order")
		}

		//公開中の商品の明細だけが残る
		lines, err := r.CartItems().ListViewByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create order")
		}
		if len(lines) == 0 {
			return NewHTTPError(http.StatusBadRequest, "Cart is empty")
		}

		// 先に全明細の在庫を見てから書き始める。
		// このreadはユーザー向けメッセージ用で、本当のガードは後の条件付き減算。
		for _, l := range lines {
			if l.Stock < l.Quantity {
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("Insufficient stock for %s. Only %d available.", l.ProductName, l.Stock))
			}
		}

		//小計と明細スナップショット
		subtotal := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(lines))

		for _, l := range lines {
			unit := l.EffectivePrice()
			lineTotal := unit.Mul(decimal.NewFromInt(l.Quantity))
			subtotal = subtotal.Add(lineTotal)

			orderItems = append(orderItems, model.OrderItem{
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				Quantity:    l.Quantity,
				UnitPrice:   unit,
				TotalPrice:  lineTotal,
			})
		}

		total := subtotal.Add(in.ShippingFee)

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:        userID,
			AddressID:     in.AddressID,
			TotalAmount:   total,
			ShippingFee:   in.ShippingFee,
			Status:        model.OrderStatusPending,
			PaymentStatus: model.PaymentStatusUnpaid,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create order")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create order")
		}

		// 在庫減算。条件付きUPDATE1文なので、同時注文と競合したら
		// ここでfalseになり、トランザクションごと巻き戻る。
		for _, l := range lines {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Failed to create order")
			}
			if !ok {
				avail, qerr := r.Inventory().GetQuantity(ctx, l.ProductID)
				if qerr != nil {
					return NewHTTPError(http.StatusInternalServerError, "Failed to create order")
				}
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("Insufficient stock for %s. Only %d available.", l.ProductName, avail))
			}
		}

		//カートをクリア（カート自体は残す）
		if err := r.CartItems().DeleteByCartID(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create order")
		}

		out = OrderCreatedOutput{
			OrderID:     orderID,
			TotalAmount: total,
			Status:      string(model.OrderStatusPending),
		}
		return nil
	})

	if err != nil {
		return OrderCreatedOutput{}, err
	}
	return out, nil
}

// 自分の注文一覧（statusで絞り込み可）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string, status string) ([]OrderSummaryOutput, error) {
	if userID == "" {
		return []OrderSummaryOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if status != "" && !model.ValidOrderStatus(status) {
		return []OrderSummaryOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var outs []OrderSummaryOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		rows, err := r.Orders().ListByUserID(ctx, userID, status)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to get orders")
		}

		outs = make([]OrderSummaryOutput, 0, len(rows))
		for _, o := range rows {
			outs = append(outs, OrderSummaryOutput{
				ID:            o.ID,
				TotalAmount:   o.TotalAmount,
				ShippingFee:   o.ShippingFee,
				Status:        string(o.Status),
				PaymentStatus: string(o.PaymentStatus),
				ItemCount:     o.ItemCount,
				AddressLine:   o.AddressLine,
				City:          o.City,
				District:      o.District,
				CreatedAt:     o.CreatedAt,
				UpdatedAt:     o.UpdatedAt,
			})
		}
		return nil
	})

	if err != nil {
		return []OrderSummaryOutput{}, err
	}
	return outs, nil
}

// 注文詳細（不変の明細スナップショット＋現在のメイン画像）
func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID string, orderID string) (OrderDetailOutput, error) {
	if userID == "" {
		return OrderDetailOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return OrderDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderDetailOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUser(ctx, orderID, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to get order detail")
		}

		items, err := r.OrderItems().ListDetailByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to get order detail")
		}

		outItems := make([]OrderItemOutput, 0, len(items))
		for _, it := range items {
			outItems = append(outItems, OrderItemOutput{
				ID:          it.ID,
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				TotalPrice:  it.TotalPrice,
				ImageURL:    it.ImageURL,
			})
		}

		out = OrderDetailOutput{
			ID:            o.ID,
			UserID:        o.UserID,
			AddressID:     o.AddressID,
			TotalAmount:   o.TotalAmount,
			ShippingFee:   o.ShippingFee,
			Status:        string(o.Status),
			PaymentStatus: string(o.PaymentStatus),
			CreatedAt:     o.CreatedAt,
			UpdatedAt:     o.UpdatedAt,
			Items:         outItems,
		}
		return nil
	})

	if err != nil {
		return OrderDetailOutput{}, err
	}

	//配送先（飾り。消えていても詳細は返す）
	if addr, err := u.addresses.FindByIDForUser(ctx, out.AddressID, userID); err == nil {
		out.Address = &addr
	}

	return out, nil
}

// CancelOrder はpendingの注文だけキャンセルできる。
// 明細どおりの数量を在庫へ戻し、同じトランザクションでstatusを変える。
func (u *OrderUsecase) CancelOrder(ctx context.Context, userID string, orderID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUser(ctx, orderID, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to cancel order")
		}

		if o.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusBadRequest, "Only pending orders can be cancelled")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to cancel order")
		}

		//スナップショットの数量をそのまま戻す
		for _, it := range items {
			if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Failed to cancel order")
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to cancel order")
		}
		return nil
	})
}

type AdminUpdateOrderInput struct {
	Status        *string
	PaymentStatus *string
}

// 管理用の直接更新。遷移グラフの検証はしない（運用の逃げ道）。
func (u *OrderUsecase) AdminUpdateOrder(ctx context.Context, orderID string, in AdminUpdateOrderInput) (model.Order, error) {
	if orderID == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Status == nil && in.PaymentStatus == nil {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "No updates provided")
	}

	var status *model.OrderStatus
	if in.Status != nil {
		if !model.ValidOrderStatus(*in.Status) {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		s := model.OrderStatus(*in.Status)
		status = &s
	}

	var ps *model.PaymentStatus
	if in.PaymentStatus != nil {
		if !model.ValidPaymentStatus(*in.PaymentStatus) {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid payment_status")
		}
		p := model.PaymentStatus(*in.PaymentStatus)
		ps = &p
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().UpdateStatusFields(ctx, orderID, status, ps)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to update order")
		}
		out = o
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}
