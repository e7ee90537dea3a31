package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents the canonical catalog listing.
type Product struct {
	ID          int64            `gorm:"primaryKey;autoIncrement"`
	Name        string           `gorm:"column:name;not null"`
	Slug        string           `gorm:"column:slug;not null;uniqueIndex"`
	Description string           `gorm:"column:description;not null;default:''"`
	BasePrice   decimal.Decimal  `gorm:"column:base_price;type:numeric(10,2);not null"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true"`
	CategoryID  *int64           `gorm:"column:category_id"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images      []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
