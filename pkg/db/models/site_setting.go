package models

import (
	"time"
)

// Setting value types. Values are stored string-encoded and re-encoded on
// write according to the declared type.
const (
	SettingTypeString  = "string"
	SettingTypeBoolean = "boolean"
	SettingTypeInteger = "integer"
	SettingTypeJSON    = "json"
)

// SiteSetting is one key of the string-encoded configuration store.
type SiteSetting struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Key         string    `gorm:"column:key;not null;uniqueIndex"`
	Value       *string   `gorm:"column:value"`
	ValueType   string    `gorm:"column:value_type;not null;default:'string'"`
	Description string    `gorm:"column:description;not null;default:''"`
	Category    string    `gorm:"column:category;not null;default:'general'"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
