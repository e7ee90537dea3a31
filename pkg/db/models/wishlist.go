package models

import (
	"time"
)

// Wishlist links a user to a saved product. The (user, product) pair is kept
// unique at the application level, not the schema level.
type Wishlist struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	ProductID int64     `gorm:"column:product_id;not null"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
