package db

import (
	"github.com/shibez0112/Ecommerce/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
}

// テーブル作成（起動時）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Product{},
		&model.ProductRating{},
		&model.WishlistItem{},
		&model.Category{},
		&model.Coupon{},
		&model.Post{},
		&model.PostReaction{},
		&model.Cart{},
		&model.CartLine{},
		&model.Order{},
		&model.OrderLine{},
		&model.AuditLog{},
	)
}
