package repository

import (
	"context"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"

	"gorm.io/gorm"
)

type categoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) repo.CategoryRepository {
	return &categoryGormRepository{db: db}
}

func (r *categoryGormRepository) Create(ctx context.Context, kind model.CategoryKind, title string) (model.Category, error) {
	c := model.Category{Kind: kind, Title: title}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, mapError(err)
	}
	return c, nil
}

func (r *categoryGormRepository) UpdateTitle(ctx context.Context, kind model.CategoryKind, id int64, title string) (model.Category, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ? AND kind = ?", id, kind).
		Update("title", title)
	if err := affected(res); err != nil {
		return model.Category{}, err
	}
	return r.FindByID(ctx, kind, id)
}

// 消したものを返す
func (r *categoryGormRepository) Delete(ctx context.Context, kind model.CategoryKind, id int64) (model.Category, error) {
	c, err := r.FindByID(ctx, kind, id)
	if err != nil {
		return model.Category{}, err
	}
	if err := affected(r.db.WithContext(ctx).Where("kind = ?", kind).Delete(&model.Category{}, id)); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *categoryGormRepository) FindByID(ctx context.Context, kind model.CategoryKind, id int64) (model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("kind = ?", kind).First(&c, id).Error; err != nil {
		return model.Category{}, mapError(err)
	}
	return c, nil
}

func (r *categoryGormRepository) List(ctx context.Context, kind model.CategoryKind) ([]model.Category, error) {
	items := []model.Category{}
	if err := r.db.WithContext(ctx).Where("kind = ?", kind).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
