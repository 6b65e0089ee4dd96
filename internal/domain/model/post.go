package model

import "time"

// ブログ記事。LikedBy/DislikedByはpost_reactionsから組み立てる
type Post struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"type:varchar(255);not null;index" json:"category"`
	Author      string    `gorm:"type:varchar(255);not null;default:'Admin'" json:"author"`
	NumViews    int64     `gorm:"not null;default:0" json:"num_views"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	LikedBy    []int64 `gorm:"-" json:"liked_by"`
	DislikedBy []int64 `gorm:"-" json:"disliked_by"`
}
