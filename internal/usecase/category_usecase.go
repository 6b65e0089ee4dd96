package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"
)

// 商品カテゴリ・ブログカテゴリ・ブランドで共通。kindごとに1つ作る
type CategoryUsecase struct {
	kind  model.CategoryKind
	repo  repo.CategoryRepository
	label string
}

// DI
func NewCategoryUsecase(kind model.CategoryKind, categories repo.CategoryRepository) *CategoryUsecase {
	label := "category"
	if kind == model.CategoryKindBrand {
		label = "brand"
	}
	return &CategoryUsecase{kind: kind, repo: categories, label: label}
}

func (u *CategoryUsecase) Create(ctx context.Context, title string) (model.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Category{}, validationError("title is required")
	}
	c, err := u.repo.Create(ctx, u.kind, title)
	if err != nil {
		return model.Category{}, conflictOr(err, u.label+" already exists")
	}
	return c, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, title string) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, validationError("invalid id")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Category{}, validationError("title is required")
	}
	c, err := u.repo.UpdateTitle(ctx, u.kind, id, title)
	if err != nil {
		return model.Category{}, u.mapErr(err)
	}
	return c, nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, validationError("invalid id")
	}
	c, err := u.repo.Delete(ctx, u.kind, id)
	if err != nil {
		return model.Category{}, notFoundOr(err, u.label+" not found")
	}
	return c, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, validationError("invalid id")
	}
	c, err := u.repo.FindByID(ctx, u.kind, id)
	if err != nil {
		return model.Category{}, notFoundOr(err, u.label+" not found")
	}
	return c, nil
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	items, err := u.repo.List(ctx, u.kind)
	if err != nil {
		return nil, storageError(err)
	}
	return items, nil
}

func (u *CategoryUsecase) mapErr(err error) error {
	if errors.Is(err, repo.ErrDuplicate) {
		return NewAppError(KindConflict, u.label+" already exists")
	}
	return notFoundOr(err, u.label+" not found")
}
