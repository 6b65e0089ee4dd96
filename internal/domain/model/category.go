package model

import "time"

// 商品カテゴリ・ブログカテゴリ・ブランドを1テーブルで持つ
type CategoryKind string

const (
	CategoryKindProduct CategoryKind = "product"
	CategoryKindBlog    CategoryKind = "blog"
	CategoryKindBrand   CategoryKind = "brand"
)

type Category struct {
	ID        int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind      CategoryKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_category_kind_title" json:"-"`
	Title     string       `gorm:"type:varchar(255);not null;uniqueIndex:idx_category_kind_title" json:"title"`
	CreatedAt time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
