package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/marivelle/catalog-backend/api/responses"
	"github.com/marivelle/catalog-backend/api/validators"
	settingsvc "github.com/marivelle/catalog-backend/internal/settings"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
	"github.com/marivelle/catalog-backend/pkg/logger"
)

// ListSettings returns all settings, optionally filtered by category.
func ListSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := svc.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

// GetSetting returns one setting by key.
func GetSetting(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(chi.URLParam(r, "key"))
		if key == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "key is required"))
			return
		}

		setting, err := svc.Get(r.Context(), key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, setting)
	}
}

type createSettingRequest struct {
	Key         string  `json:"key" validate:"required"`
	Value       *string `json:"value"`
	ValueType   string  `json:"value_type"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// CreateSetting inserts a setting; duplicate keys are rejected.
func CreateSetting(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createSettingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setting, err := svc.Create(r.Context(), settingsvc.CreateInput{
			Key:         payload.Key,
			Value:       payload.Value,
			ValueType:   payload.ValueType,
			Description: payload.Description,
			Category:    payload.Category,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, setting)
	}
}

type updateSettingRequest struct {
	Value       *string `json:"value,omitempty"`
	ValueType   *string `json:"value_type,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// UpdateSetting mutates one setting by key.
func UpdateSetting(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(chi.URLParam(r, "key"))
		if key == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "key is required"))
			return
		}

		var payload updateSettingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setting, err := svc.Update(r.Context(), key, settingsvc.UpdateInput{
			Value:       payload.Value,
			ValueType:   payload.ValueType,
			Description: payload.Description,
			Category:    payload.Category,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, setting)
	}
}

// BulkUpdateSettings re-encodes each value per its stored type. Unknown keys
// are created as string settings in the general category. The body is
// `{"settings": {key: value, ...}}`; a bare key/value map is also accepted.
func BulkUpdateSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Settings map[string]any `json:"settings"`
		}
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}
		payload := map[string]any{}
		if err := json.Unmarshal(raw, &body); err == nil && body.Settings != nil {
			payload = body.Settings
		} else if err := json.Unmarshal(raw, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}
		// a "settings" key surviving to here means a malformed wrapper,
		// not a setting literally named "settings"
		if _, ok := payload["settings"]; ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "settings must be an object"))
			return
		}
		if len(payload) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no settings provided"))
			return
		}

		result, err := svc.BulkUpdate(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// PublicSettings returns the whitelisted, typed storefront settings.
func PublicSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := svc.Public(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, values)
	}
}
