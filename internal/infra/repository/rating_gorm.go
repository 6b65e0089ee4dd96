package repository

import (
	"context"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ratingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) repo.RatingRepository {
	return &ratingGormRepository{db: db}
}

// (product_id, user_id)が衝突したら更新
func (r *ratingGormRepository) Upsert(ctx context.Context, rating model.ProductRating) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"star", "comment", "updated_at"}),
		}).
		Create(&rating).Error
	return mapError(err)
}

func (r *ratingGormRepository) ListStarsByProduct(ctx context.Context, productID int64) ([]int, error) {
	var stars []int
	err := r.db.WithContext(ctx).
		Model(&model.ProductRating{}).
		Where("product_id = ?", productID).
		Pluck("star", &stars).Error
	if err != nil {
		return nil, err
	}
	return stars, nil
}
