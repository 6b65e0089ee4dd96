package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discountは割引率（%）
type Coupon struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Expiry    time.Time `gorm:"not null" json:"expiry"`
	Discount  int64     `gorm:"not null" json:"discount"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (c *Coupon) IsExpired(now time.Time) bool {
	return !c.Expiry.After(now)
}

// 割引後の金額。割引額は1単位未満を偶数丸めする
func ApplyDiscount(total int64, percent int64) int64 {
	off := decimal.NewFromInt(total).
		Mul(decimal.NewFromInt(percent)).
		Div(decimal.NewFromInt(100)).
		RoundBank(0)
	return total - off.IntPart()
}
