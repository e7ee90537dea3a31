package user

import "github.com/marivelle/catalog-backend/pkg/db/models"

// UserDTO is the outward representation of an account. Password material
// never leaves the persistence layer.
type UserDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

func NewUserDTO(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
	}
}
