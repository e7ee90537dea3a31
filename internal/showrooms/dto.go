package showroom

import (
	"time"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

// ShowroomDTO is the payload returned to clients.
type ShowroomDTO struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Address       string            `json:"address"`
	City          string            `json:"city"`
	State         string            `json:"state"`
	ZipCode       string            `json:"zip_code"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email"`
	OpeningHours  map[string]string `json:"opening_hours,omitempty"`
	MapURL        *string           `json:"map_url,omitempty"`
	GalleryImages []string          `json:"gallery_images"`
	IsActive      bool              `json:"is_active"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewShowroomDTO maps the model.
func NewShowroomDTO(showroom *models.Showroom) *ShowroomDTO {
	gallery := make([]string, len(showroom.GalleryImages))
	copy(gallery, showroom.GalleryImages)

	return &ShowroomDTO{
		ID:            showroom.ID,
		Name:          showroom.Name,
		Address:       showroom.Address,
		City:          showroom.City,
		State:         showroom.State,
		ZipCode:       showroom.ZipCode,
		Phone:         showroom.Phone,
		Email:         showroom.Email,
		OpeningHours:  showroom.OpeningHours,
		MapURL:        showroom.MapURL,
		GalleryImages: gallery,
		IsActive:      showroom.IsActive,
		CreatedAt:     showroom.CreatedAt,
		UpdatedAt:     showroom.UpdatedAt,
	}
}
