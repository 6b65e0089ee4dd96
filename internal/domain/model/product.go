package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 価格は最小通貨単位（整数）で持つ
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string          `gorm:"type:varchar(255);not null;index" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Price       int64           `gorm:"not null" json:"price"`
	Category    string          `gorm:"type:varchar(255);index" json:"category"`
	Brand       string          `gorm:"type:varchar(255);index" json:"brand"`
	Quantity    int64           `gorm:"not null;default:0" json:"quantity"`
	Sold        int64           `gorm:"not null;default:0" json:"sold"`
	Color       string          `gorm:"type:varchar(100)" json:"color"`
	TotalRating decimal.Decimal `gorm:"type:numeric(3,1);not null;default:0" json:"total_rating"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// 1ユーザー1商品につき1件
type ProductRating struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_rating_product_user" json:"product_id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_rating_product_user" json:"user_id"`
	Star      int       `gorm:"not null" json:"star"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

const (
	MinStar = 1
	MaxStar = 5
)

// 平均評価（小数1桁、偶数丸め）。評価なしは0
func AverageRating(stars []int) decimal.Decimal {
	if len(stars) == 0 {
		return decimal.Zero
	}
	var sum int64
	for _, s := range stars {
		sum += int64(s)
	}
	return decimal.NewFromInt(sum).
		DivRound(decimal.NewFromInt(int64(len(stars))), 8).
		RoundBank(1)
}
