package models

import (
	"time"
)

// ProductImage is a single gallery entry. At most one image per product is
// meant to be primary, but nothing at the schema level enforces that.
type ProductImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ProductID int64     `gorm:"column:product_id;not null"`
	ImageURL  string    `gorm:"column:image_url;not null"`
	IsPrimary bool      `gorm:"column:is_primary;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
