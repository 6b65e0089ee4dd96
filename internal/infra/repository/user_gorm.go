package repository

import (
	"context"
	"time"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	domainrepo "github.com/shibez0112/Ecommerce/internal/repository"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	return mapError(r.db.WithContext(ctx).Create(user).Error)
}

// emailでユーザーを1件取得
func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, mapError(err)
	}

	return &u, nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User

	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, mapError(err)
	}

	return &u, nil
}

// 期限切れのトークンはヒットさせない
func (r *userGormRepository) FindByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("password_reset_token_hash = ? AND password_reset_expires_at > ?", tokenHash, now).
		First(&u).Error
	if err != nil {
		return nil, mapError(err)
	}

	return &u, nil
}

func (r *userGormRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return []model.User{}, err
	}
	return users, nil
}

// ユーザーを更新。
func (r *userGormRepository) Update(ctx context.Context, user *model.User) error {
	return mapError(r.db.WithContext(ctx).Save(user).Error)
}

// 許可した項目だけ更新
func (r *userGormRepository) UpdateProfile(ctx context.Context, id int64, p domainrepo.UserProfile) error {
	updates := map[string]interface{}{}
	if p.Firstname != nil {
		updates["firstname"] = *p.Firstname
	}
	if p.Lastname != nil {
		updates["lastname"] = *p.Lastname
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.Mobile != nil {
		updates["mobile"] = *p.Mobile
	}
	if len(updates) == 0 {
		return nil
	}

	return affected(r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(updates))
}

func (r *userGormRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("is_blocked", blocked))
}

func (r *userGormRepository) SetAddress(ctx context.Context, id int64, address string) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("address", address))
}

func (r *userGormRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.User{}, id))
}

// token_versionを+1 します。
func (r *userGormRepository) IncrementTokenVersion(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + ?", 1)))
}
