package models

import (
	"time"
)

// Category is one node of the catalog tree. parent_id null means root;
// children are loaded with an explicit second query, never recursively.
type Category struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Name        string     `gorm:"column:name;not null"`
	Slug        string     `gorm:"column:slug;not null;uniqueIndex"`
	Description string     `gorm:"column:description;not null;default:''"`
	ImageURL    *string    `gorm:"column:image_url"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	ParentID    *int64     `gorm:"column:parent_id"`
	Children    []Category `gorm:"-"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
