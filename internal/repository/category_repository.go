package repository

import (
	"context"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
)

// 種類（商品カテゴリ/ブログカテゴリ/ブランド）ごとに同じ操作
type CategoryRepository interface {
	Create(ctx context.Context, kind model.CategoryKind, title string) (model.Category, error)
	UpdateTitle(ctx context.Context, kind model.CategoryKind, id int64, title string) (model.Category, error)
	Delete(ctx context.Context, kind model.CategoryKind, id int64) (model.Category, error)
	FindByID(ctx context.Context, kind model.CategoryKind, id int64) (model.Category, error)
	List(ctx context.Context, kind model.CategoryKind) ([]model.Category, error)
}
