package repository

import (
	"context"
	"time"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
)

// プロフィール更新で変更してよい項目。nilは変更しない
type UserProfile struct {
	Firstname *string
	Lastname  *string
	Email     *string
	Mobile    *string
}

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（email/mobile重複はErrDuplicate）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//期限内のリセットトークンを持つユーザー
	FindByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// ユーザー情報の保存（最後のログイン・パスワード・リセットトークンなど）
	Update(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, userID int64, p UserProfile) error
	SetBlocked(ctx context.Context, userID int64, blocked bool) error
	SetAddress(ctx context.Context, userID int64, address string) error
	Delete(ctx context.Context, userID int64) error
	//トークンのバージョンを＋１
	IncrementTokenVersion(ctx context.Context, userID int64) error
}
