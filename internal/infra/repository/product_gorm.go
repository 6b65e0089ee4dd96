package repository

import (
	"context"
	"strings"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 絞り込み/ソート/項目指定/ページング付きで返す。
// 件数は絞り込み後の総数
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	//価格
	if q.PriceGTE != nil {
		tx = tx.Where("price >= ?", *q.PriceGTE)
	}
	if q.PriceGT != nil {
		tx = tx.Where("price > ?", *q.PriceGT)
	}
	if q.PriceLTE != nil {
		tx = tx.Where("price <= ?", *q.PriceLTE)
	}
	if q.PriceLT != nil {
		tx = tx.Where("price < ?", *q.PriceLT)
	}

	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Brand != "" {
		tx = tx.Where("brand = ?", q.Brand)
	}
	if q.Color != "" {
		tx = tx.Where("color = ?", q.Color)
	}

	// q titleを対象
	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("title ILIKE ?", like)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	//sort
	if len(q.Sort) == 0 {
		tx = tx.Order("created_at desc")
	}
	for _, s := range q.Sort {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Column}, Desc: s.Desc})
	}
	tx = tx.Order("id desc")

	if len(q.Fields) > 0 {
		tx = tx.Select(q.Fields)
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return model.Product{}, mapError(err)
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, mapError(err)
	}
	return p, nil
}

// 商品の更新（指定された項目だけ）
func (r *ProductGormRepository) Update(ctx context.Context, id int64, patch repo.ProductPatch) error {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Slug != nil {
		updates["slug"] = *patch.Slug
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Brand != nil {
		updates["brand"] = *patch.Brand
	}
	if patch.Quantity != nil {
		updates["quantity"] = *patch.Quantity
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if len(updates) == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}

	return affected(r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(updates))
}

// 商品削除
func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Product{}, id))
}

// 在庫が足りるときだけ減らす（条件付きUPDATE）
func (r *ProductGormRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", productID, qty).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", qty),
			"sold":     gorm.Expr("sold + ?", qty),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ProductGormRepository) SetTotalRating(ctx context.Context, productID int64, rating decimal.Decimal) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Update("total_rating", rating))
}
