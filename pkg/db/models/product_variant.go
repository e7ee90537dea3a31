package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant is a purchasable size/color/stock combination under a product.
// PriceOverride, when set, takes precedence over the product's base price.
type ProductVariant struct {
	ID            int64            `gorm:"primaryKey;autoIncrement"`
	ProductID     int64            `gorm:"column:product_id;not null"`
	SKU           string           `gorm:"column:sku;not null;uniqueIndex"`
	Size          string           `gorm:"column:size;not null;default:''"`
	Color         string           `gorm:"column:color;not null;default:''"`
	StockQuantity int              `gorm:"column:stock_quantity;not null;default:0"`
	PriceOverride *decimal.Decimal `gorm:"column:price_override;type:numeric(10,2)"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
