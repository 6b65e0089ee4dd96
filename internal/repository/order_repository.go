package repository

import (
	"context"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
)

type OrderRepository interface {
	//明細も一緒に作る
	Create(ctx context.Context, order model.Order) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
