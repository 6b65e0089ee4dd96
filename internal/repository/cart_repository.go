package repository

import (
	"context"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
)

type CartRepository interface {
	//明細込みで取得
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	//明細も一緒に作る
	Create(ctx context.Context, cart model.Cart) (model.Cart, error)
	//無くてもエラーにしない。消したかどうかを返す
	DeleteByUserID(ctx context.Context, userID int64) (bool, error)
	SetTotalAfterDiscount(ctx context.Context, cartID int64, total int64, coupon string) error
}
