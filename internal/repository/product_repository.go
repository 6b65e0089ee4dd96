package repository

import (
	"context"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	"github.com/shopspring/decimal"
)

type SortField struct {
	Column string
	Desc   bool
}

// 一覧検索。ColumnやFieldsは呼び出し側で許可リストを通したもの
type ProductListQuery struct {
	PriceGTE *int64
	PriceGT  *int64
	PriceLTE *int64
	PriceLT  *int64
	Category string
	Brand    string
	Color    string
	Q        string

	Sort   []SortField
	Fields []string

	Page  int
	Limit int
}

// 管理者が更新できる項目。nilは変更しない
type ProductPatch struct {
	Title       *string
	Slug        *string
	Description *string
	Price       *int64
	Category    *string
	Brand       *string
	Quantity    *int64
	Color       *string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//条件に合う件数も返す
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, id int64, patch ProductPatch) error
	SoftDelete(ctx context.Context, id int64) error

	// 在庫が足りるときだけ減算し、soldを加算
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
	SetTotalRating(ctx context.Context, productID int64, rating decimal.Decimal) error
}

// 商品評価
type RatingRepository interface {
	//(product,user)で1件。既にあればstarとcommentを更新
	Upsert(ctx context.Context, r model.ProductRating) error
	ListStarsByProduct(ctx context.Context, productID int64) ([]int, error)
}

// ほしい物リスト
type WishlistRepository interface {
	Exists(ctx context.Context, userID, productID int64) (bool, error)
	//既にあっても成功
	Add(ctx context.Context, userID, productID int64) error
	//無くても成功
	Remove(ctx context.Context, userID, productID int64) error
	ListProductIDs(ctx context.Context, userID int64) ([]int64, error)
	ListProducts(ctx context.Context, userID int64) ([]model.Product, error)
}
