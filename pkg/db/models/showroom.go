package models

import (
	"time"

	"github.com/lib/pq"

	dbtypes "github.com/marivelle/catalog-backend/pkg/db/types"
)

// Showroom is a physical retail location surfaced on the storefront.
type Showroom struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	Name          string          `gorm:"column:name;not null"`
	Address       string          `gorm:"column:address;not null;default:''"`
	City          string          `gorm:"column:city;not null;default:''"`
	State         string          `gorm:"column:state;not null;default:''"`
	ZipCode       string          `gorm:"column:zip_code;not null;default:''"`
	Phone         string          `gorm:"column:phone;not null;default:''"`
	Email         string          `gorm:"column:email;not null;default:''"`
	OpeningHours  dbtypes.JSONMap `gorm:"column:opening_hours;type:jsonb"`
	MapURL        *string         `gorm:"column:map_url"`
	GalleryImages pq.StringArray  `gorm:"column:gallery_images;type:text[];not null;default:'{}'"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
