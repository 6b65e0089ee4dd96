package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	now    Clock
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, now: time.Now}
}

type CashOrderInput struct {
	COD           bool
	CouponApplied bool
}

type OrderLineOutput struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Count     int64  `json:"count"`
	Color     string `json:"color"`
}

// 支払い情報（代引きのみ）
type PaymentIntentOutput struct {
	ID       int64  `json:"id"`
	Method   string `json:"method"`
	Amount   int64  `json:"amount"`
	Status   string `json:"status"`
	Currency string `json:"currency"`
	Created  int64  `json:"created"`
}

type OrderOutput struct {
	ID            int64               `json:"id"`
	OrderBy       int64               `json:"orderby"`
	OrderStatus   string              `json:"orderStatus"`
	PaymentIntent PaymentIntentOutput `json:"paymentIntent"`
	Products      []OrderLineOutput   `json:"products"`
	CreatedAt     time.Time           `json:"created_at"`
}

// カートから代引き注文を作る。在庫減算・注文作成・カート削除を1Tx
func (u *OrderUsecase) CreateCashOrder(ctx context.Context, userID int64, in CashOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, unauthorized()
	}
	if !in.COD {
		return OrderOutput{}, validationError("create cash order failed")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err != nil {
			return notFoundOr(err, "cart not found")
		}
		if len(cart.Lines) == 0 {
			return validationError("cart is empty")
		}

		lines := make([]model.OrderLine, 0, len(cart.Lines))
		for _, l := range cart.Lines {
			p, err := r.Products().FindByID(ctx, l.ProductID)
			if err != nil {
				return notFoundOr(err, "product not found")
			}

			//在庫減算（足りないなら false）
			ok, err := r.Products().DecreaseStockIfEnough(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return storageError(err)
			}
			if !ok {
				return validationError("out of stock")
			}

			//スナップショット
			lines = append(lines, model.OrderLine{
				ProductID:            l.ProductID,
				ProductTitleSnapshot: p.Title,
				UnitPriceSnapshot:    l.UnitPrice,
				Quantity:             l.Quantity,
				Color:                l.Color,
			})
		}

		order, err := r.Orders().Create(ctx, model.Order{
			UserID:        userID,
			Status:        model.OrderStatusCashOnDelivery,
			PaymentMethod: model.PaymentMethodCOD,
			Amount:        cart.PayableTotal(in.CouponApplied),
			Currency:      "usd",
			Lines:         lines,
		})
		if err != nil {
			return storageError(err)
		}

		//注文したカートは消す
		if _, err := r.Carts().DeleteByUserID(ctx, userID); err != nil {
			return storageError(err)
		}

		out = toOrderOutput(order)
		return nil
	})
	if err != nil {
		return OrderOutput{}, wrapTxError(err)
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, unauthorized()
	}
	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}
	out := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderOutput(o))
	}
	return out, nil
}

// 管理者によるステータス変更。監査ログを残す
func (u *OrderUsecase) UpdateStatus(ctx context.Context, actorUserID int64, orderID int64, status string) (OrderOutput, error) {
	if actorUserID <= 0 {
		return OrderOutput{}, unauthorized()
	}
	if orderID <= 0 {
		return OrderOutput{}, validationError("invalid id")
	}
	newStatus := model.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !newStatus.Valid() {
		return OrderOutput{}, validationError("invalid status")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return notFoundOr(err, "order not found")
		}

		// すでに同じなら何もしない
		if o.Status == newStatus {
			out = toOrderOutput(o)
			return nil
		}

		before := o.Status
		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return notFoundOr(err, "order not found")
		}

		if err := writeAudit(ctx, r.AuditLogs(), auditEntry{
			Actor:    actorUserID,
			Action:   model.AuditActionUpdateOrderStatus,
			Resource: model.AuditResourceOrder,
			ID:       orderID,
			Before:   map[string]string{"status": string(before)},
			After:    map[string]string{"status": string(newStatus)},
		}, u.now()); err != nil {
			return storageError(err)
		}

		o.Status = newStatus
		out = toOrderOutput(o)
		return nil
	})
	if err != nil {
		return OrderOutput{}, wrapTxError(err)
	}
	return out, nil
}

func toOrderOutput(o model.Order) OrderOutput {
	lines := make([]OrderLineOutput, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineOutput{
			ProductID: l.ProductID,
			Title:     l.ProductTitleSnapshot,
			Price:     l.UnitPriceSnapshot,
			Count:     l.Quantity,
			Color:     l.Color,
		})
	}
	return OrderOutput{
		ID:          o.ID,
		OrderBy:     o.UserID,
		OrderStatus: string(o.Status),
		PaymentIntent: PaymentIntentOutput{
			ID:       o.ID,
			Method:   o.PaymentMethod,
			Amount:   o.Amount,
			Status:   string(o.Status),
			Currency: o.Currency,
			Created:  o.CreatedAt.Unix(),
		},
		Products:  lines,
		CreatedAt: o.CreatedAt,
	}
}
