package showroom

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/pkg/db/models"
	dbtypes "github.com/marivelle/catalog-backend/pkg/db/types"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
)

const defaultListLimit = 100

// Service exposes showroom operations.
type Service interface {
	List(ctx context.Context, activeOnly bool, skip, limit int) ([]ShowroomDTO, error)
	Get(ctx context.Context, id int64) (*ShowroomDTO, error)
	Create(ctx context.Context, input CreateInput) (*ShowroomDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*ShowroomDTO, error)
	Delete(ctx context.Context, id int64) error
}

// CreateInput is the command object both request shapes (JSON body and
// multipart form) resolve into at the controller boundary.
type CreateInput struct {
	Name           string
	Address        string
	City           string
	State          string
	ZipCode        string
	Phone          string
	Email          string
	OpeningHours   map[string]string
	MapURL         *string
	GalleryImages  []string
	UploadedImages []string
	IsActive       bool
}

// UpdateInput holds optional mutation values. GalleryImages replaces the
// stored list when non-nil; UploadedImages are appended afterwards either
// way.
type UpdateInput struct {
	Name           *string
	Address        *string
	City           *string
	State          *string
	ZipCode        *string
	Phone          *string
	Email          *string
	OpeningHours   *map[string]string
	MapURL         *string
	GalleryImages  *[]string
	UploadedImages []string
	IsActive       *bool
}

type service struct {
	repo *Repository
}

// NewService constructs a showroom service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("showroom repository required")
	}
	return &service{repo: repo}, nil
}

// List returns showrooms, optionally filtered to active ones.
func (s *service) List(ctx context.Context, activeOnly bool, skip, limit int) ([]ShowroomDTO, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	if skip < 0 {
		skip = 0
	}
	rows, err := s.repo.List(ctx, activeOnly, skip, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list showrooms")
	}
	out := make([]ShowroomDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewShowroomDTO(&rows[i]))
	}
	return out, nil
}

// Get loads one showroom.
func (s *service) Get(ctx context.Context, id int64) (*ShowroomDTO, error) {
	showroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "showroom not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load showroom")
	}
	return NewShowroomDTO(showroom), nil
}

// Create inserts a showroom; uploaded files land after URL-supplied gallery
// entries.
func (s *service) Create(ctx context.Context, input CreateInput) (*ShowroomDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	gallery := append([]string{}, input.GalleryImages...)
	gallery = append(gallery, input.UploadedImages...)

	showroom := &models.Showroom{
		Name:          strings.TrimSpace(input.Name),
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		ZipCode:       input.ZipCode,
		Phone:         input.Phone,
		Email:         input.Email,
		OpeningHours:  dbtypes.JSONMap(input.OpeningHours),
		MapURL:        input.MapURL,
		GalleryImages: gallery,
		IsActive:      input.IsActive,
	}
	created, err := s.repo.Create(ctx, showroom)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert showroom")
	}
	return NewShowroomDTO(created), nil
}

// Update mutates non-nil fields. A supplied gallery list replaces the stored
// one; uploads append in both cases.
func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*ShowroomDTO, error) {
	showroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "showroom not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load showroom")
	}

	applyUpdate(showroom, input)

	saved, err := s.repo.Save(ctx, showroom)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update showroom")
	}
	return NewShowroomDTO(saved), nil
}

// Delete removes the showroom.
func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "showroom not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load showroom")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete showroom")
	}
	return nil
}

func applyUpdate(showroom *models.Showroom, input UpdateInput) {
	if input.Name != nil {
		showroom.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		showroom.Address = *input.Address
	}
	if input.City != nil {
		showroom.City = *input.City
	}
	if input.State != nil {
		showroom.State = *input.State
	}
	if input.ZipCode != nil {
		showroom.ZipCode = *input.ZipCode
	}
	if input.Phone != nil {
		showroom.Phone = *input.Phone
	}
	if input.Email != nil {
		showroom.Email = *input.Email
	}
	if input.OpeningHours != nil {
		showroom.OpeningHours = dbtypes.JSONMap(*input.OpeningHours)
	}
	if input.MapURL != nil {
		showroom.MapURL = input.MapURL
	}
	if input.IsActive != nil {
		showroom.IsActive = *input.IsActive
	}

	if input.GalleryImages != nil {
		showroom.GalleryImages = append([]string{}, (*input.GalleryImages)...)
	}
	if len(input.UploadedImages) > 0 {
		showroom.GalleryImages = append(showroom.GalleryImages, input.UploadedImages...)
	}
}
