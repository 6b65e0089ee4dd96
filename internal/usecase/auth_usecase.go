package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	"github.com/shibez0112/Ecommerce/internal/repository"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, in RegisterInput) error
	ValidateLogin(ctx context.Context, email string, password string) error
	ValidateRefresh(ctx context.Context, refreshToken string, userAgent string) error
	ValidatePassword(ctx context.Context, password string) error
	ValidateForceLogout(ctx context.Context, targetUserID int64) error
}

// リセットメールの送信
type Mailer interface {
	SendPasswordReset(ctx context.Context, to string, resetURL string) error
}

type AuthOptions struct {
	RefreshTTL time.Duration
	ResetTTL   time.Duration
	//フロントのURL（/reset-password/<token>を付ける）
	ResetURLBase string
	Now          Clock
}

type UserDTO struct {
	ID           int64  `json:"id"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	Role         string `json:"role"`
	IsBlocked    bool   `json:"is_blocked"`
	Address      string `json:"address"`
	TokenVersion int    `json:"token_version"`
}

type JwtAccessTokenDTO struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenVersion int    `json:"token_version"`
}

type RegisterInput struct {
	Firstname string
	Lastname  string
	Email     string
	Mobile    string
	Password  string
}

type AuthLoginResponse struct {
	User  UserDTO           `json:"user"`
	Token JwtAccessTokenDTO `json:"token"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type ForceLogoutResponse struct {
	UserID          int64 `json:"user_id"`
	NewTokenVersion int   `json:"new_token_version"`
}

type LoginResult struct {
	Body              AuthLoginResponse
	RefreshTokenPlain string
}

type RefreshResult struct {
	Body              JwtAccessTokenDTO
	RefreshTokenPlain string
}

type AuthUsecase struct {
	users     repository.UserRepository
	rtRepo    repository.RefreshTokenRepository
	auditLogs repository.AuditLogRepository
	validator AuthValidator
	hasher    PasswordHasher
	issuer    AccessTokenIssuer
	tokens    TokenGenerator
	mailer    Mailer
	opts      AuthOptions
}

// DI
func NewAuthUsecase(
	users repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	auditLogs repository.AuditLogRepository,
	validator AuthValidator,
	hasher PasswordHasher,
	issuer AccessTokenIssuer,
	tokens TokenGenerator,
	mailer Mailer,
	opts AuthOptions,
) *AuthUsecase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AuthUsecase{
		users:     users,
		rtRepo:    rtRepo,
		auditLogs: auditLogs,
		validator: validator,
		hasher:    hasher,
		issuer:    issuer,
		tokens:    tokens,
		mailer:    mailer,
		opts:      opts,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Mobile = strings.TrimSpace(in.Mobile)

	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in); err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, storageError(err)
	}

	user := &model.User{
		Firstname:    strings.TrimSpace(in.Firstname),
		Lastname:     strings.TrimSpace(in.Lastname),
		Email:        in.Email,
		Mobile:       in.Mobile,
		PasswordHash: pwHash,
		Role:         model.RoleUser,
	}

	//email/mobile重複はunique制約で弾く
	if err := u.users.Create(ctx, user); err != nil {
		return nil, conflictOr(err, "user already exists")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

func (u *AuthUsecase) Login(ctx context.Context, email string, password string, userAgent string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := u.validator.ValidateLogin(ctx, email, password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewAppError(KindUnauthorized, "invalid credentials")
	}
	if err != nil {
		return nil, storageError(err)
	}

	//パスワード照合（bcrypt）
	if !u.hasher.Verify(password, user.PasswordHash) {
		return nil, NewAppError(KindUnauthorized, "invalid credentials")
	}

	//停止ユーザーはログイン不可
	if user.IsBlocked {
		return nil, NewAppError(KindForbidden, "user is blocked")
	}

	now := u.opts.Now()
	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		return nil, storageError(err)
	}

	accessToken, expiresIn, err := u.issuer.Issue(user, now)
	if err != nil {
		return nil, storageError(err)
	}

	refreshPlain, err := u.createRefreshToken(ctx, user.ID, userAgent, now)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Body: AuthLoginResponse{
			User: toUserDTO(user),
			Token: JwtAccessTokenDTO{
				AccessToken:  accessToken,
				ExpiresIn:    expiresIn,
				TokenVersion: user.TokenVersion,
			},
		},
		RefreshTokenPlain: refreshPlain,
	}, nil
}

func (u *AuthUsecase) Refresh(ctx context.Context, refreshTokenPlain string, userAgent string) (*RefreshResult, error) {
	if err := u.validator.ValidateRefresh(ctx, refreshTokenPlain, userAgent); err != nil {
		return nil, err
	}

	now := u.opts.Now()

	rt, err := u.rtRepo.FindByTokenHash(ctx, hashToken(refreshTokenPlain))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, unauthorized()
	}
	if err != nil {
		return nil, storageError(err)
	}

	//期限切れ
	if rt.IsExpired(now) {
		_ = u.rtRepo.DeleteByID(ctx, rt.ID)
		return nil, unauthorized()
	}

	if rt.RevokedAt != nil {
		return nil, unauthorized()
	}

	//used済みが来たら replay → 全削除
	if rt.UsedAt != nil {
		_ = u.rtRepo.DeleteAllByUserID(ctx, rt.UserID)
		return nil, NewAppError(KindUnauthorized, "refresh token reuse detected")
	}

	// user_agent違い（再認証扱い。全削除）
	if userAgent != "" && rt.UserAgent != "" && userAgent != rt.UserAgent {
		_ = u.rtRepo.DeleteAllByUserID(ctx, rt.UserID)
		return nil, NewAppError(KindUnauthorized, "refresh token reuse detected")
	}

	user, err := u.users.FindByID(ctx, rt.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, unauthorized()
	}
	if err != nil {
		return nil, storageError(err)
	}
	if user.IsBlocked {
		return nil, NewAppError(KindForbidden, "user is blocked")
	}

	//旧tokenをusedにする（同時refreshは片方だけ成功）
	if err := u.rtRepo.MarkUsed(ctx, rt.ID, now); err != nil {
		_ = u.rtRepo.DeleteAllByUserID(ctx, rt.UserID)
		return nil, NewAppError(KindUnauthorized, "refresh token reuse detected")
	}

	newPlain, err := u.createRefreshToken(ctx, user.ID, userAgent, now)
	if err != nil {
		return nil, err
	}

	accessToken, expiresIn, err := u.issuer.Issue(user, now)
	if err != nil {
		return nil, storageError(err)
	}

	return &RefreshResult{
		Body: JwtAccessTokenDTO{
			AccessToken:  accessToken,
			ExpiresIn:    expiresIn,
			TokenVersion: user.TokenVersion,
		},
		RefreshTokenPlain: newPlain,
	}, nil
}

// cookieが無い/見つからない場合も成功扱い
func (u *AuthUsecase) Logout(ctx context.Context, refreshTokenPlain string) error {
	if strings.TrimSpace(refreshTokenPlain) == "" {
		return nil
	}

	rt, err := u.rtRepo.FindByTokenHash(ctx, hashToken(refreshTokenPlain))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return storageError(err)
	}

	if err := u.rtRepo.DeleteByID(ctx, rt.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return storageError(err)
	}
	return nil
}

// token_versionを上げてrefreshを全削除
func (u *AuthUsecase) ForceLogout(ctx context.Context, actorUserID int64, targetUserID int64) (*ForceLogoutResponse, error) {
	if actorUserID <= 0 {
		return nil, unauthorized()
	}
	if err := u.validator.ValidateForceLogout(ctx, targetUserID); err != nil {
		return nil, err
	}

	before, err := u.users.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}

	if err := u.users.IncrementTokenVersion(ctx, targetUserID); err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	if err := u.rtRepo.DeleteAllByUserID(ctx, targetUserID); err != nil {
		return nil, storageError(err)
	}

	//更新後を取得してnew_token_versionを返す
	after, err := u.users.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, storageError(err)
	}

	if err := writeAudit(ctx, u.auditLogs, auditEntry{
		Actor:    actorUserID,
		Action:   model.AuditActionForceLogout,
		Resource: model.AuditResourceUser,
		ID:       targetUserID,
		Before:   map[string]int{"token_version": before.TokenVersion},
		After:    map[string]int{"token_version": after.TokenVersion},
	}, u.opts.Now()); err != nil {
		return nil, storageError(err)
	}

	return &ForceLogoutResponse{
		UserID:          after.ID,
		NewTokenVersion: after.TokenVersion,
	}, nil
}

// リセットトークンを発行してメールで送る。平文トークンは返さない
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) (*SuccessResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, validationError("email is required")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, notFoundOr(err, "user not found with this email")
	}

	plain, err := u.tokens.NewToken()
	if err != nil {
		return nil, storageError(err)
	}

	hash := hashResetToken(plain)
	expires := u.opts.Now().Add(u.opts.ResetTTL)
	user.PasswordResetTokenHash = &hash
	user.PasswordResetExpiresAt = &expires

	if err := u.users.Update(ctx, user); err != nil {
		return nil, storageError(err)
	}

	resetURL := strings.TrimRight(u.opts.ResetURLBase, "/") + "/reset-password/" + plain
	if err := u.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		return nil, storageError(err)
	}

	return &SuccessResponse{Message: "reset link sent"}, nil
}

// 期限内のトークンならパスワードを変更。既存のaccess/refreshは無効にする
func (u *AuthUsecase) ResetPassword(ctx context.Context, token string, password string) (*UserDTO, error) {
	if strings.TrimSpace(token) == "" {
		return nil, validationError("token is required")
	}
	if err := u.validator.ValidatePassword(ctx, password); err != nil {
		return nil, err
	}

	now := u.opts.Now()
	user, err := u.users.FindByResetTokenHash(ctx, hashResetToken(token), now)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, validationError("token expired, please try again later")
	}
	if err != nil {
		return nil, storageError(err)
	}

	pwHash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, storageError(err)
	}

	user.PasswordHash = pwHash
	user.PasswordChangedAt = &now
	user.PasswordResetTokenHash = nil
	user.PasswordResetExpiresAt = nil

	if err := u.users.Update(ctx, user); err != nil {
		return nil, storageError(err)
	}
	if err := u.users.IncrementTokenVersion(ctx, user.ID); err != nil {
		return nil, storageError(err)
	}
	if err := u.rtRepo.DeleteAllByUserID(ctx, user.ID); err != nil {
		return nil, storageError(err)
	}

	user.TokenVersion++
	dto := toUserDTO(user)
	return &dto, nil
}

func (u *AuthUsecase) ChangePassword(ctx context.Context, userID int64, password string) (*UserDTO, error) {
	if userID <= 0 {
		return nil, unauthorized()
	}
	if err := u.validator.ValidatePassword(ctx, password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}

	pwHash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, storageError(err)
	}

	now := u.opts.Now()
	user.PasswordHash = pwHash
	user.PasswordChangedAt = &now

	if err := u.users.Update(ctx, user); err != nil {
		return nil, storageError(err)
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// refresh token生成（平文はcookie、DBにはhash）
func (u *AuthUsecase) createRefreshToken(ctx context.Context, userID int64, userAgent string, now time.Time) (string, error) {
	plain, err := u.tokens.NewToken()
	if err != nil {
		return "", storageError(err)
	}

	rt := &model.RefreshToken{
		ID:        u.tokens.NewID(),
		UserID:    userID,
		TokenHash: hashToken(plain),
		UserAgent: userAgent,
		ExpiresAt: now.Add(u.opts.RefreshTTL),
	}
	if err := u.rtRepo.Create(ctx, rt); err != nil {
		return "", storageError(err)
	}
	return plain, nil
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Firstname:    u.Firstname,
		Lastname:     u.Lastname,
		Email:        u.Email,
		Mobile:       u.Mobile,
		Role:         string(u.Role),
		IsBlocked:    u.IsBlocked,
		Address:      u.Address,
		TokenVersion: u.TokenVersion,
	}
}
