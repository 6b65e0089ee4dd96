package repository

import (
	"context"

	repo "github.com/shibez0112/Ecommerce/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users     repo.UserRepository
	products  repo.ProductRepository
	posts     repo.PostRepository
	reactions repo.ReactionRepository
	carts     repo.CartRepository
	coupons   repo.CouponRepository
	orders    repo.OrderRepository
	auditLogs repo.AuditLogRepository
}

func (r *txReposGorm) Users() repo.UserRepository         { return r.users }
func (r *txReposGorm) Products() repo.ProductRepository   { return r.products }
func (r *txReposGorm) Posts() repo.PostRepository         { return r.posts }
func (r *txReposGorm) Reactions() repo.ReactionRepository { return r.reactions }
func (r *txReposGorm) Carts() repo.CartRepository         { return r.carts }
func (r *txReposGorm) Coupons() repo.CouponRepository     { return r.coupons }
func (r *txReposGorm) Orders() repo.OrderRepository       { return r.orders }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがerrorを返せばrollback
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:     NewUserGormRepository(tx),
			products:  NewProductGormRepository(tx),
			posts:     NewPostGormRepository(tx),
			reactions: NewReactionGormRepository(tx),
			carts:     NewCartGormRepository(tx),
			coupons:   NewCouponGormRepository(tx),
			orders:    NewOrderGormRepository(tx),
			auditLogs: NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}

var _ repo.TransactionManager = (*TxManagerGorm)(nil)
