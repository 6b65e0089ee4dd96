package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"
)

type UserUsecase struct {
	users    repo.UserRepository
	wishlist repo.WishlistRepository
	tx       repo.TransactionManager
	now      Clock
}

// DI
func NewUserUsecase(users repo.UserRepository, wishlist repo.WishlistRepository, tx repo.TransactionManager) *UserUsecase {
	return &UserUsecase{users: users, wishlist: wishlist, tx: tx, now: time.Now}
}

// プロフィール更新（本人のみ）。空文字は変更なし
type UpdateProfileInput struct {
	Firstname string
	Lastname  string
	Email     string
	Mobile    string
}

func (u *UserUsecase) List(ctx context.Context) ([]UserDTO, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	return out, nil
}

func (u *UserUsecase) Get(ctx context.Context, userID int64) (*UserDTO, error) {
	if userID <= 0 {
		return nil, validationError("invalid id")
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	dto := toUserDTO(user)
	return &dto, nil
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*UserDTO, error) {
	if userID <= 0 {
		return nil, unauthorized()
	}

	var p repo.UserProfile
	if v := strings.TrimSpace(in.Firstname); v != "" {
		p.Firstname = &v
	}
	if v := strings.TrimSpace(in.Lastname); v != "" {
		p.Lastname = &v
	}
	if v := strings.ToLower(strings.TrimSpace(in.Email)); v != "" {
		if !strings.Contains(v, "@") {
			return nil, validationError("invalid email")
		}
		p.Email = &v
	}
	if v := strings.TrimSpace(in.Mobile); v != "" {
		p.Mobile = &v
	}

	if err := u.users.UpdateProfile(ctx, userID, p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, NewAppError(KindConflict, "email or mobile already used")
		}
		return nil, notFoundOr(err, "user not found")
	}
	return u.Get(ctx, userID)
}

func (u *UserUsecase) SaveAddress(ctx context.Context, userID int64, address string) (*UserDTO, error) {
	if userID <= 0 {
		return nil, unauthorized()
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, validationError("address is required")
	}
	if err := u.users.SetAddress(ctx, userID, address); err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return u.Get(ctx, userID)
}

// ブロックしたらtoken_versionも上げて既存トークンを無効にする
func (u *UserUsecase) Block(ctx context.Context, actorUserID int64, targetUserID int64) (*UserDTO, error) {
	return u.setBlocked(ctx, actorUserID, targetUserID, true)
}

func (u *UserUsecase) Unblock(ctx context.Context, actorUserID int64, targetUserID int64) (*UserDTO, error) {
	return u.setBlocked(ctx, actorUserID, targetUserID, false)
}

func (u *UserUsecase) setBlocked(ctx context.Context, actorUserID int64, targetUserID int64, blocked bool) (*UserDTO, error) {
	if actorUserID <= 0 {
		return nil, unauthorized()
	}
	if targetUserID <= 0 {
		return nil, validationError("invalid id")
	}
	if blocked && actorUserID == targetUserID {
		return nil, validationError("cannot block yourself")
	}

	action := model.AuditActionUnblockUser
	if blocked {
		action = model.AuditActionBlockUser
	}

	var out UserDTO
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Users().FindByID(ctx, targetUserID)
		if err != nil {
			return notFoundOr(err, "user not found")
		}

		if err := r.Users().SetBlocked(ctx, targetUserID, blocked); err != nil {
			return notFoundOr(err, "user not found")
		}
		if blocked {
			if err := r.Users().IncrementTokenVersion(ctx, targetUserID); err != nil {
				return storageError(err)
			}
		}

		if err := writeAudit(ctx, r.AuditLogs(), auditEntry{
			Actor:    actorUserID,
			Action:   action,
			Resource: model.AuditResourceUser,
			ID:       targetUserID,
			Before:   map[string]bool{"is_blocked": before.IsBlocked},
			After:    map[string]bool{"is_blocked": blocked},
		}, u.now()); err != nil {
			return storageError(err)
		}

		after, err := r.Users().FindByID(ctx, targetUserID)
		if err != nil {
			return storageError(err)
		}
		out = toUserDTO(after)
		return nil
	})
	if err != nil {
		return nil, wrapTxError(err)
	}
	return &out, nil
}

func (u *UserUsecase) Delete(ctx context.Context, actorUserID int64, targetUserID int64) (*UserDTO, error) {
	if actorUserID <= 0 {
		return nil, unauthorized()
	}
	if targetUserID <= 0 {
		return nil, validationError("invalid id")
	}
	if actorUserID == targetUserID {
		return nil, validationError("cannot delete yourself")
	}

	var out UserDTO
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, targetUserID)
		if err != nil {
			return notFoundOr(err, "user not found")
		}
		if err := r.Users().Delete(ctx, targetUserID); err != nil {
			return notFoundOr(err, "user not found")
		}
		out = toUserDTO(user)

		return writeAudit(ctx, r.AuditLogs(), auditEntry{
			Actor:    actorUserID,
			Action:   model.AuditActionDeleteUser,
			Resource: model.AuditResourceUser,
			ID:       targetUserID,
			Before:   out,
		}, u.now())
	})
	if err != nil {
		return nil, wrapTxError(err)
	}
	return &out, nil
}

// ほしい物リストの商品
func (u *UserUsecase) Wishlist(ctx context.Context, userID int64) ([]model.Product, error) {
	if userID <= 0 {
		return nil, unauthorized()
	}
	products, err := u.wishlist.ListProducts(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}
	return products, nil
}
