package models

import (
	"time"
)

// User represents the canonical identity entity.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FullName     string    `gorm:"column:full_name;not null;default:''"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	IsSuperuser  bool      `gorm:"column:is_superuser;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
