package repository

import (
	"context"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"

	"gorm.io/gorm"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカートを明細込みで取得
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_lines.id asc")
		}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return model.Cart{}, mapError(err)
	}
	return cart, nil
}

// cartsとcart_linesを作る。user_idが既にあればErrDuplicate
func (r *CartGormRepository) Create(ctx context.Context, cart model.Cart) (model.Cart, error) {
	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		return model.Cart{}, mapError(err)
	}
	return cart, nil
}

// 明細→カートの順に消す
func (r *CartGormRepository) DeleteByUserID(ctx context.Context, userID int64) (bool, error) {
	var deleted bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&model.Cart{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("cart_id IN (?)", sub).Delete(&model.CartLine{}).Error; err != nil {
			return err
		}

		res := tx.Where("user_id = ?", userID).Delete(&model.Cart{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (r *CartGormRepository) SetTotalAfterDiscount(ctx context.Context, cartID int64, total int64, coupon string) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"total_after_discount": total,
			"applied_coupon":       coupon,
		}))
}

var _ repo.CartRepository = (*CartGormRepository)(nil)
