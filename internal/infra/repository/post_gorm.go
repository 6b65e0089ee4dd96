package repository

import (
	"context"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostGormRepository struct {
	db *gorm.DB
}

// DI
func NewPostGormRepository(db *gorm.DB) *PostGormRepository {
	return &PostGormRepository{db: db}
}

func (r *PostGormRepository) Create(ctx context.Context, p model.Post) (model.Post, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Post{}, mapError(err)
	}
	return p, nil
}

// 指定された項目だけ更新
func (r *PostGormRepository) Update(ctx context.Context, id int64, patch repo.PostPatch) error {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Author != nil {
		updates["author"] = *patch.Author
	}
	if len(updates) == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}
	return affected(r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(updates))
}

func (r *PostGormRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Post{}, id))
}

func (r *PostGormRepository) FindByID(ctx context.Context, id int64) (model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return model.Post{}, mapError(err)
	}
	return p, nil
}

// SELECT ... FOR UPDATE。同じ記事へのトグルはここで直列になる
func (r *PostGormRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, id).Error
	if err != nil {
		return model.Post{}, mapError(err)
	}
	return p, nil
}

func (r *PostGormRepository) List(ctx context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	if err := r.db.WithContext(ctx).Order("id desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// num_viewsを+1（UPDATE1本なので取りこぼさない）
func (r *PostGormRepository) IncrementViews(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("num_views", gorm.Expr("num_views + ?", 1)))
}
