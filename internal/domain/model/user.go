package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// 会員。パスワードとリセットトークンはハッシュだけを保存する
type User struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Firstname string `gorm:"type:varchar(100);not null" json:"firstname"`
	Lastname  string `gorm:"type:varchar(100);not null" json:"lastname"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Mobile    string `gorm:"type:varchar(30);uniqueIndex;not null" json:"mobile"`

	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	IsBlocked    bool   `gorm:"not null;default:false" json:"is_blocked"`

	//配送先（自由入力）
	Address string `gorm:"type:text" json:"address"`

	//JWTのtvと比較する。上げると既存のaccess tokenは無効
	TokenVersion int `gorm:"not null;default:0" json:"token_version"`

	PasswordChangedAt      *time.Time `json:"password_changed_at,omitempty"`
	PasswordResetTokenHash *string    `gorm:"type:varchar(64);index" json:"-"`
	PasswordResetExpiresAt *time.Time `json:"-"`
	LastLoginAt            *time.Time `json:"last_login_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
