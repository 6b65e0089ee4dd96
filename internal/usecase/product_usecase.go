package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"

	"github.com/gosimple/slug"
)

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	ratingRepo   repo.RatingRepository
	wishlistRepo repo.WishlistRepository
	tx           repo.TransactionManager
	now          Clock
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	ratingRepo repo.RatingRepository,
	wishlistRepo repo.WishlistRepository,
	tx repo.TransactionManager,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		ratingRepo:   ratingRepo,
		wishlistRepo: wishlistRepo,
		tx:           tx,
		now:          time.Now,
	}
}

// POST /api/product の入力
type CreateProductInput struct {
	Title       string
	Description string
	Price       int64
	Category    string
	Brand       string
	Quantity    int64
	Color       string
}

// PUT /api/product/:id の入力。nilは変更なし
type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *int64
	Category    *string
	Brand       *string
	Quantity    *int64
	Color       *string
}

type RateProductInput struct {
	ProductID int64
	Star      int
	Comment   string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) List(ctx context.Context, q repo.ProductListQuery) (ProductListOutput, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 || q.Limit > maxLimit {
		q.Limit = defaultLimit
	}

	if q.Page > maxPage {
		return ProductListOutput{}, NewAppError(KindNotFound, "this page does not exist")
	}

	items, total, err := u.productRepo.List(ctx, q)
	if err != nil {
		return ProductListOutput{}, storageError(err)
	}

	//範囲外のページ
	if q.Page > 1 && int64(q.Page-1)*int64(q.Limit) >= total {
		return ProductListOutput{}, NewAppError(KindNotFound, "this page does not exist")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	}, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, validationError("invalid product id")
	}
	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, notFoundOr(err, "product not found")
	}
	return p, nil
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Product{}, validationError("title is required")
	}
	if in.Price < 0 {
		return model.Product{}, validationError("price must be >= 0")
	}
	if in.Quantity < 0 {
		return model.Product{}, validationError("quantity must be >= 0")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Title:       title,
		Slug:        slug.Make(title),
		Description: in.Description,
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Brand:       strings.TrimSpace(in.Brand),
		Quantity:    in.Quantity,
		Color:       strings.TrimSpace(in.Color),
	})
	if err != nil {
		return model.Product{}, storageError(err)
	}
	return p, nil
}

// タイトルが変わればslugも作り直す
func (u *ProductUsecase) Update(ctx context.Context, productID int64, in UpdateProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, validationError("invalid product id")
	}
	if in.Price != nil && *in.Price < 0 {
		return model.Product{}, validationError("price must be >= 0")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return model.Product{}, validationError("quantity must be >= 0")
	}

	patch := repo.ProductPatch{
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Brand:       in.Brand,
		Quantity:    in.Quantity,
		Color:       in.Color,
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return model.Product{}, validationError("title is required")
		}
		s := slug.Make(title)
		patch.Title = &title
		patch.Slug = &s
	}

	if err := u.productRepo.Update(ctx, productID, patch); err != nil {
		return model.Product{}, notFoundOr(err, "product not found")
	}
	return u.Get(ctx, productID)
}

// 論理削除。監査ログを残す
func (u *ProductUsecase) Delete(ctx context.Context, actorUserID int64, productID int64) (model.Product, error) {
	if actorUserID <= 0 {
		return model.Product{}, unauthorized()
	}
	if productID <= 0 {
		return model.Product{}, validationError("invalid product id")
	}

	var deleted model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			return notFoundOr(err, "product not found")
		}
		if err := r.Products().SoftDelete(ctx, productID); err != nil {
			return notFoundOr(err, "product not found")
		}
		deleted = p

		return writeAudit(ctx, r.AuditLogs(), auditEntry{
			Actor:    actorUserID,
			Action:   model.AuditActionDeleteProduct,
			Resource: model.AuditResourceProduct,
			ID:       productID,
			Before:   map[string]interface{}{"title": p.Title, "price": p.Price, "quantity": p.Quantity},
			After:    map[string]bool{"deleted": true},
		}, u.now())
	})
	if err != nil {
		return model.Product{}, wrapTxError(err)
	}
	return deleted, nil
}

// 入っていれば外し、無ければ入れる。最新のid一覧を返す
func (u *ProductUsecase) ToggleWishlist(ctx context.Context, userID int64, productID int64) ([]int64, error) {
	if userID <= 0 {
		return nil, unauthorized()
	}
	if productID <= 0 {
		return nil, validationError("invalid product id")
	}
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		return nil, notFoundOr(err, "product not found")
	}

	exists, err := u.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		return nil, storageError(err)
	}
	if exists {
		err = u.wishlistRepo.Remove(ctx, userID, productID)
	} else {
		err = u.wishlistRepo.Add(ctx, userID, productID)
	}
	if err != nil {
		return nil, storageError(err)
	}

	ids, err := u.wishlistRepo.ListProductIDs(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}
	return ids, nil
}

// 評価を登録（同じユーザーは上書き）して平均を再計算
func (u *ProductUsecase) Rate(ctx context.Context, userID int64, in RateProductInput) (model.Product, error) {
	if userID <= 0 {
		return model.Product{}, unauthorized()
	}
	if in.ProductID <= 0 {
		return model.Product{}, validationError("invalid product id")
	}
	if in.Star < model.MinStar || in.Star > model.MaxStar {
		return model.Product{}, validationError("star must be between 1 and 5")
	}

	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		return model.Product{}, notFoundOr(err, "product not found")
	}

	if err := u.ratingRepo.Upsert(ctx, model.ProductRating{
		ProductID: in.ProductID,
		UserID:    userID,
		Star:      in.Star,
		Comment:   strings.TrimSpace(in.Comment),
	}); err != nil {
		return model.Product{}, storageError(err)
	}

	stars, err := u.ratingRepo.ListStarsByProduct(ctx, in.ProductID)
	if err != nil {
		return model.Product{}, storageError(err)
	}
	if err := u.productRepo.SetTotalRating(ctx, in.ProductID, model.AverageRating(stars)); err != nil {
		return model.Product{}, notFoundOr(err, "product not found")
	}

	return u.Get(ctx, in.ProductID)
}
