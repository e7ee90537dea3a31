package settings

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/pkg/db"
	"github.com/marivelle/catalog-backend/pkg/db/models"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
)

// PublicKeys is the whitelisted subset served without authentication.
var PublicKeys = []string{
	"store_name",
	"store_logo",
	"store_email",
	"store_phone",
	"store_address",
	"currency",
	"currency_symbol",
	"meta_title",
	"meta_description",
	"social_facebook",
	"social_instagram",
	"social_twitter",
}

// Service exposes the site configuration store.
type Service interface {
	List(ctx context.Context, category string) ([]SettingDTO, error)
	Get(ctx context.Context, key string) (*SettingDTO, error)
	Create(ctx context.Context, input CreateInput) (*SettingDTO, error)
	Update(ctx context.Context, key string, input UpdateInput) (*SettingDTO, error)
	BulkUpdate(ctx context.Context, values map[string]any) (*BulkUpdateResult, error)
	Public(ctx context.Context) (map[string]any, error)
}

// CreateInput holds the payload to create a setting.
type CreateInput struct {
	Key         string
	Value       *string
	ValueType   string
	Description string
	Category    string
}

// UpdateInput holds optional mutation values for a setting.
type UpdateInput struct {
	Value       *string
	ValueType   *string
	Description *string
	Category    *string
}

// BulkUpdateResult reports which keys a bulk update touched.
type BulkUpdateResult struct {
	Message     string   `json:"message"`
	UpdatedKeys []string `json:"updated_keys"`
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a settings service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, errors.New("settings repository required")
	}
	if dbClient == nil {
		return nil, errors.New("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// List returns all settings, optionally filtered by category.
func (s *service) List(ctx context.Context, category string) ([]SettingDTO, error) {
	rows, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list settings")
	}
	out := make([]SettingDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewSettingDTO(&rows[i]))
	}
	return out, nil
}

// Get loads one setting by key.
func (s *service) Get(ctx context.Context, key string) (*SettingDTO, error) {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "setting not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load setting")
	}
	return NewSettingDTO(setting), nil
}

// Create inserts a new setting, rejecting duplicate keys.
func (s *service) Create(ctx context.Context, input CreateInput) (*SettingDTO, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "key is required")
	}

	if _, err := s.repo.FindByKey(ctx, key); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "setting with this key already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load setting")
	}

	valueType := input.ValueType
	if valueType == "" {
		valueType = models.SettingTypeString
	}
	category := input.Category
	if category == "" {
		category = "general"
	}

	setting := &models.SiteSetting{
		Key:         key,
		Value:       input.Value,
		ValueType:   valueType,
		Description: input.Description,
		Category:    category,
	}
	created, err := s.repo.Create(ctx, setting)
	if err != nil {
		if db.IsUniqueViolation(err, "site_settings_key_key") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "setting with this key already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert setting")
	}
	return NewSettingDTO(created), nil
}

// Update mutates non-nil fields of the setting.
func (s *service) Update(ctx context.Context, key string, input UpdateInput) (*SettingDTO, error) {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "setting not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load setting")
	}

	if input.Value != nil {
		setting.Value = input.Value
	}
	if input.ValueType != nil {
		setting.ValueType = *input.ValueType
	}
	if input.Description != nil {
		setting.Description = *input.Description
	}
	if input.Category != nil {
		setting.Category = *input.Category
	}

	saved, err := s.repo.Save(ctx, setting)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update setting")
	}
	return NewSettingDTO(saved), nil
}

// BulkUpdate re-encodes each value per the target setting's declared type,
// creating unknown keys as string/general. All changes commit together.
func (s *service) BulkUpdate(ctx context.Context, values map[string]any) (*BulkUpdateResult, error) {
	result := &BulkUpdateResult{Message: "Settings updated successfully"}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		for key, raw := range values {
			setting, err := txRepo.FindByKey(ctx, key)
			switch {
			case err == nil:
				encoded, encErr := EncodeValue(setting.ValueType, raw)
				if encErr != nil {
					return encErr
				}
				setting.Value = encoded
				if _, err := txRepo.Save(ctx, setting); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update setting")
				}
				result.UpdatedKeys = append(result.UpdatedKeys, key)

			case errors.Is(err, gorm.ErrRecordNotFound):
				encoded, encErr := stringify(raw)
				if encErr != nil {
					return encErr
				}
				created := &models.SiteSetting{
					Key:       key,
					Value:     encoded,
					ValueType: models.SettingTypeString,
					Category:  "general",
				}
				if _, err := txRepo.Create(ctx, created); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert setting")
				}
				result.UpdatedKeys = append(result.UpdatedKeys, key)

			default:
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load setting")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bulk update settings")
	}

	return result, nil
}

// Public returns the whitelisted keys with typed values, no auth required.
func (s *service) Public(ctx context.Context) (map[string]any, error) {
	rows, err := s.repo.FindByKeys(ctx, PublicKeys)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load public settings")
	}
	out := make(map[string]any, len(rows))
	for _, setting := range rows {
		out[setting.Key] = DecodeValue(setting)
	}
	return out, nil
}
