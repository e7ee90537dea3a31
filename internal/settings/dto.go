package settings

import (
	"time"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

// SettingDTO is the admin-facing setting payload.
type SettingDTO struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key"`
	Value       *string   `json:"value"`
	ValueType   string    `json:"value_type"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSettingDTO maps the model.
func NewSettingDTO(setting *models.SiteSetting) *SettingDTO {
	return &SettingDTO{
		ID:          setting.ID,
		Key:         setting.Key,
		Value:       setting.Value,
		ValueType:   setting.ValueType,
		Description: setting.Description,
		Category:    setting.Category,
		CreatedAt:   setting.CreatedAt,
		UpdatedAt:   setting.UpdatedAt,
	}
}
