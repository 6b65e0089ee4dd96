package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"
)

// CartUsecase は /api/user/cart の業務ロジックです。
type CartUsecase struct {
	tx      repo.TransactionManager
	carts   repo.CartRepository
	coupons repo.CouponRepository
	now     Clock
}

// DI
func NewCartUsecase(tx repo.TransactionManager, carts repo.CartRepository, coupons repo.CouponRepository) *CartUsecase {
	return &CartUsecase{tx: tx, carts: carts, coupons: coupons, now: time.Now}
}

// 送られてきた1行。価格は受け取らない
type CartLineInput struct {
	ProductID int64
	Quantity  int64
	Color     string
}

// priceはカート作成時点の単価
type CartLineOutput struct {
	Product int64  `json:"product"`
	Count   int64  `json:"count"`
	Color   string `json:"color"`
	Price   int64  `json:"price"`
}

type CartOutput struct {
	ID                 int64            `json:"id"`
	Products           []CartLineOutput `json:"products"`
	CartTotal          int64            `json:"cartTotal"`
	TotalAfterDiscount *int64           `json:"totalAfterDiscount,omitempty"`
	AppliedCoupon      string           `json:"appliedCoupon,omitempty"`
	OrderBy            int64            `json:"orderby"`
	CreatedAt          time.Time        `json:"created_at"`
}

// カートを作り直す（追加ではなく置き換え）。
// 単価はカタログから引き直し、1件でも商品が無ければ何も書かずにNotFound
func (u *CartUsecase) RebuildCart(ctx context.Context, ownerID int64, lines []CartLineInput) (CartOutput, error) {
	if ownerID <= 0 {
		return CartOutput{}, unauthorized()
	}
	if len(lines) == 0 {
		return CartOutput{}, validationError("cart is empty")
	}
	for _, l := range lines {
		if l.ProductID <= 0 {
			return CartOutput{}, validationError("invalid product id")
		}
		if l.Quantity < 1 {
			return CartOutput{}, validationError("invalid quantity")
		}
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//先に全商品の単価を確定させる（ここで失敗すれば既存カートはそのまま）
		resolved := make([]model.CartLine, 0, len(lines))
		for _, l := range lines {
			p, err := r.Products().FindByID(ctx, l.ProductID)
			if err != nil {
				return notFoundOr(err, "product not found")
			}
			resolved = append(resolved, model.CartLine{
				ProductID: p.ID,
				Quantity:  l.Quantity,
				Color:     strings.TrimSpace(l.Color),
				UnitPrice: p.Price,
			})
		}

		total, err := model.CartTotal(resolved)
		if err != nil {
			return validationError("invalid quantity")
		}

		//古いカートは無くてもよい
		if _, err := r.Carts().DeleteByUserID(ctx, ownerID); err != nil {
			return storageError(err)
		}

		created, err := r.Carts().Create(ctx, model.Cart{
			UserID: ownerID,
			Lines:  resolved,
			Total:  total,
		})
		if err != nil {
			return storageError(err)
		}

		out = toCartOutput(created)
		return nil
	})
	if err != nil {
		return CartOutput{}, wrapTxError(err)
	}
	return out, nil
}

func (u *CartUsecase) GetCart(ctx context.Context, ownerID int64) (CartOutput, error) {
	if ownerID <= 0 {
		return CartOutput{}, unauthorized()
	}
	cart, err := u.carts.FindByUserID(ctx, ownerID)
	if err != nil {
		return CartOutput{}, notFoundOr(err, "cart not found")
	}
	return toCartOutput(cart), nil
}

// 空にする。カートが無ければnil
func (u *CartUsecase) EmptyCart(ctx context.Context, ownerID int64) (*CartOutput, error) {
	if ownerID <= 0 {
		return nil, unauthorized()
	}

	var out *CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, ownerID)
		if err == nil {
			c := toCartOutput(cart)
			out = &c
		} else if !errors.Is(err, repo.ErrNotFound) {
			return storageError(err)
		}

		if _, err := r.Carts().DeleteByUserID(ctx, ownerID); err != nil {
			return storageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, wrapTxError(err)
	}
	return out, nil
}

// クーポンの割引後金額をカートに保存
func (u *CartUsecase) ApplyCoupon(ctx context.Context, ownerID int64, couponName string) (CartOutput, error) {
	if ownerID <= 0 {
		return CartOutput{}, unauthorized()
	}
	name := strings.ToUpper(strings.TrimSpace(couponName))
	if name == "" {
		return CartOutput{}, validationError("coupon is required")
	}

	coupon, err := u.coupons.FindByName(ctx, name)
	if err != nil {
		return CartOutput{}, notFoundOr(err, "invalid coupon")
	}
	if coupon.IsExpired(u.now()) {
		return CartOutput{}, validationError("coupon expired")
	}

	cart, err := u.carts.FindByUserID(ctx, ownerID)
	if err != nil {
		return CartOutput{}, notFoundOr(err, "cart not found")
	}

	after := model.ApplyDiscount(cart.Total, coupon.Discount)
	if err := u.carts.SetTotalAfterDiscount(ctx, cart.ID, after, coupon.Name); err != nil {
		return CartOutput{}, notFoundOr(err, "cart not found")
	}

	cart.TotalAfterDiscount = &after
	cart.AppliedCoupon = coupon.Name
	return toCartOutput(cart), nil
}

func toCartOutput(c model.Cart) CartOutput {
	products := make([]CartLineOutput, 0, len(c.Lines))
	for _, l := range c.Lines {
		products = append(products, CartLineOutput{
			Product: l.ProductID,
			Count:   l.Quantity,
			Color:   l.Color,
			Price:   l.UnitPrice,
		})
	}
	return CartOutput{
		ID:                 c.ID,
		Products:           products,
		CartTotal:          c.Total,
		TotalAfterDiscount: c.TotalAfterDiscount,
		AppliedCoupon:      c.AppliedCoupon,
		OrderBy:            c.UserID,
		CreatedAt:          c.CreatedAt,
	}
}
