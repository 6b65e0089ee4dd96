package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/shibez0112/Ecommerce/internal/repository"
	"github.com/shibez0112/Ecommerce/internal/usecase"
)

// パスワード最低文字数
const minPasswordLen = 8

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, in usecase.RegisterInput) error {
	// 必須チェック
	if strings.TrimSpace(in.Firstname) == "" || strings.TrimSpace(in.Lastname) == "" {
		return usecase.NewAppError(usecase.KindValidation, "firstname and lastname are required")
	}
	if strings.TrimSpace(in.Mobile) == "" {
		return usecase.NewAppError(usecase.KindValidation, "mobile is required")
	}
	if !isEmailLike(in.Email) {
		return usecase.NewAppError(usecase.KindValidation, "invalid email")
	}
	if len(in.Password) < minPasswordLen {
		return usecase.NewAppError(usecase.KindValidation, "password must be at least 8 characters")
	}

	// email重複チェック（DBが必要）
	_, err := v.users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err == nil {
		return usecase.NewAppError(usecase.KindConflict, "user already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return &usecase.AppError{Kind: usecase.KindStorage, Message: "db error", Err: err}
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return usecase.NewAppError(usecase.KindValidation, "email and password are required")
	}
	if !isEmailLike(email) {
		return usecase.NewAppError(usecase.KindValidation, "invalid email")
	}
	return nil
}

// refresh 入力を検証
func (v *authValidator) ValidateRefresh(ctx context.Context, refreshToken string, userAgent string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return usecase.NewAppError(usecase.KindUnauthorized, "no refresh token in cookies")
	}
	return nil
}

func (v *authValidator) ValidatePassword(ctx context.Context, password string) error {
	if len(password) < minPasswordLen {
		return usecase.NewAppError(usecase.KindValidation, "password must be at least 8 characters")
	}
	return nil
}

// 強制ログアウトの入力を検証
func (v *authValidator) ValidateForceLogout(ctx context.Context, targetUserID int64) error {
	if targetUserID <= 0 {
		return usecase.NewAppError(usecase.KindValidation, "invalid user id")
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}
