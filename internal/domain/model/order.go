package model

import "time"

type OrderStatus string

const (
	OrderStatusNotProcessed   OrderStatus = "NOT_PROCESSED"
	OrderStatusCashOnDelivery OrderStatus = "CASH_ON_DELIVERY"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusDispatched     OrderStatus = "DISPATCHED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNotProcessed, OrderStatusCashOnDelivery, OrderStatusProcessing,
		OrderStatusDispatched, OrderStatusCancelled, OrderStatusDelivered:
		return true
	}
	return false
}

const PaymentMethodCOD = "COD"

type Order struct {
	ID            int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64       `gorm:"not null;index" json:"user_id"`
	Status        OrderStatus `gorm:"type:varchar(30);not null;index" json:"status"`
	PaymentMethod string      `gorm:"type:varchar(20);not null" json:"payment_method"`
	Amount        int64       `gorm:"not null" json:"amount"`
	Currency      string      `gorm:"type:varchar(10);not null;default:'usd'" json:"currency"`
	Lines         []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt     time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 注文明細（商品名と単価はスナップショット）
type OrderLine struct {
	ID                   int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID              int64     `gorm:"not null;index" json:"order_id"`
	ProductID            int64     `gorm:"not null;index" json:"product_id"`
	ProductTitleSnapshot string    `gorm:"type:varchar(255);not null" json:"product_title"`
	UnitPriceSnapshot    int64     `gorm:"not null" json:"unit_price"`
	Quantity             int64     `gorm:"not null" json:"quantity"`
	Color                string    `gorm:"type:varchar(100)" json:"color"`
	CreatedAt            time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
