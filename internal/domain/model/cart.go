package model

import (
	"errors"
	"math"
	"time"
)

// 金額がint64に収まらない、または負
var ErrAmountOutOfRange = errors.New("amount out of range")

// 1ユーザーにつきカートは1つ（user_idはunique）
type Cart struct {
	ID                 int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             int64      `gorm:"not null;uniqueIndex" json:"user_id"`
	Lines              []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"lines"`
	Total              int64      `gorm:"not null" json:"total"`
	TotalAfterDiscount *int64     `json:"total_after_discount,omitempty"`
	AppliedCoupon      string     `gorm:"type:varchar(100)" json:"applied_coupon,omitempty"`
	CreatedAt          time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// カート明細。UnitPriceは作成時点の価格
type CartLine struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;index" json:"cart_id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Color     string    `gorm:"type:varchar(100)" json:"color"`
	UnitPrice int64     `gorm:"not null;column:unit_price_snapshot" json:"unit_price"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (l CartLine) Subtotal() (int64, error) {
	if l.Quantity < 0 || l.UnitPrice < 0 {
		return 0, ErrAmountOutOfRange
	}
	if l.UnitPrice != 0 && l.Quantity > math.MaxInt64/l.UnitPrice {
		return 0, ErrAmountOutOfRange
	}
	return l.Quantity * l.UnitPrice, nil
}

// 明細の合計。桁あふれはErrAmountOutOfRange
func CartTotal(lines []CartLine) (int64, error) {
	var total int64
	for _, l := range lines {
		sub, err := l.Subtotal()
		if err != nil {
			return 0, err
		}
		if total > math.MaxInt64-sub {
			return 0, ErrAmountOutOfRange
		}
		total += sub
	}
	return total, nil
}

// 注文時に使う金額（クーポン適用済みならそちら）
func (c *Cart) PayableTotal(couponApplied bool) int64 {
	if couponApplied && c.TotalAfterDiscount != nil {
		return *c.TotalAfterDiscount
	}
	return c.Total
}
