package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"
)

type CouponUsecase struct {
	coupons repo.CouponRepository
}

// DI
func NewCouponUsecase(coupons repo.CouponRepository) *CouponUsecase {
	return &CouponUsecase{coupons: coupons}
}

// nameは大文字にして保存。discountは%（1..100）
type CouponInput struct {
	Name     string
	Expiry   time.Time
	Discount int64
}

func (u *CouponUsecase) Create(ctx context.Context, in CouponInput) (model.Coupon, error) {
	c, err := normalizeCoupon(in)
	if err != nil {
		return model.Coupon{}, err
	}
	created, err := u.coupons.Create(ctx, c)
	if err != nil {
		return model.Coupon{}, conflictOr(err, "coupon already exists")
	}
	return created, nil
}

func (u *CouponUsecase) Update(ctx context.Context, id int64, in CouponInput) (model.Coupon, error) {
	if id <= 0 {
		return model.Coupon{}, validationError("invalid id")
	}
	c, err := normalizeCoupon(in)
	if err != nil {
		return model.Coupon{}, err
	}
	c.ID = id

	if err := u.coupons.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Coupon{}, NewAppError(KindConflict, "coupon already exists")
		}
		return model.Coupon{}, notFoundOr(err, "coupon not found")
	}
	return u.Get(ctx, id)
}

func (u *CouponUsecase) Delete(ctx context.Context, id int64) (model.Coupon, error) {
	c, err := u.Get(ctx, id)
	if err != nil {
		return model.Coupon{}, err
	}
	if err := u.coupons.Delete(ctx, id); err != nil {
		return model.Coupon{}, notFoundOr(err, "coupon not found")
	}
	return c, nil
}

func (u *CouponUsecase) Get(ctx context.Context, id int64) (model.Coupon, error) {
	if id <= 0 {
		return model.Coupon{}, validationError("invalid id")
	}
	c, err := u.coupons.FindByID(ctx, id)
	if err != nil {
		return model.Coupon{}, notFoundOr(err, "coupon not found")
	}
	return c, nil
}

func (u *CouponUsecase) List(ctx context.Context) ([]model.Coupon, error) {
	items, err := u.coupons.List(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return items, nil
}

func normalizeCoupon(in CouponInput) (model.Coupon, error) {
	name := strings.ToUpper(strings.TrimSpace(in.Name))
	if name == "" {
		return model.Coupon{}, validationError("name is required")
	}
	if in.Expiry.IsZero() {
		return model.Coupon{}, validationError("expiry is required")
	}
	if in.Discount < 1 || in.Discount > 100 {
		return model.Coupon{}, validationError("discount must be between 1 and 100")
	}
	return model.Coupon{Name: name, Expiry: in.Expiry, Discount: in.Discount}, nil
}
