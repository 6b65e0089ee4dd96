package repository

import (
	"context"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
)

type CouponRepository interface {
	Create(ctx context.Context, c model.Coupon) (model.Coupon, error)
	//name/expiry/discountを保存
	Update(ctx context.Context, c model.Coupon) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (model.Coupon, error)
	FindByName(ctx context.Context, name string) (model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
}
