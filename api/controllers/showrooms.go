package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/marivelle/catalog-backend/api/responses"
	"github.com/marivelle/catalog-backend/api/validators"
	showroomsvc "github.com/marivelle/catalog-backend/internal/showrooms"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
	"github.com/marivelle/catalog-backend/pkg/logger"
	"github.com/marivelle/catalog-backend/pkg/uploads"
)

// ListShowrooms returns showrooms, active ones by default.
func ListShowrooms(svc showroomsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, err := validators.ParseQueryInt(r, "skip", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 100, 1, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		activeOnly, err := validators.ParseQueryBool(r, "active_only", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		showrooms, err := svc.List(r.Context(), activeOnly, skip, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, showrooms)
	}
}

// GetShowroom returns one showroom.
func GetShowroom(svc showroomsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		showroom, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, showroom)
	}
}

type createShowroomRequest struct {
	Name          string            `json:"name" validate:"required"`
	Address       string            `json:"address" validate:"required"`
	City          string            `json:"city" validate:"required"`
	State         string            `json:"state" validate:"required"`
	ZipCode       string            `json:"zip_code" validate:"required"`
	Phone         string            `json:"phone" validate:"required"`
	Email         string            `json:"email" validate:"required,email"`
	OpeningHours  map[string]string `json:"opening_hours" validate:"required"`
	MapURL        *string           `json:"map_url,omitempty"`
	GalleryImages []string          `json:"gallery_images,omitempty"`
	IsActive      *bool             `json:"is_active,omitempty"`
}

// CreateShowroom accepts a JSON body or a multipart form with gallery files.
func CreateShowroom(svc showroomsvc.Service, store *uploads.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			input showroomsvc.CreateInput
			err   error
		)
		if isMultipart(r) {
			input, err = parseCreateShowroomForm(r, store)
		} else {
			input, err = parseCreateShowroomJSON(r)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		showroom, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, showroom)
	}
}

type updateShowroomRequest struct {
	Name          *string            `json:"name,omitempty"`
	Address       *string            `json:"address,omitempty"`
	City          *string            `json:"city,omitempty"`
	State         *string            `json:"state,omitempty"`
	ZipCode       *string            `json:"zip_code,omitempty"`
	Phone         *string            `json:"phone,omitempty"`
	Email         *string            `json:"email,omitempty"`
	OpeningHours  *map[string]string `json:"opening_hours,omitempty"`
	MapURL        *string            `json:"map_url,omitempty"`
	GalleryImages *[]string          `json:"gallery_images,omitempty"`
	IsActive      *bool              `json:"is_active,omitempty"`
}

// UpdateShowroom mutates provided fields; uploads append to the gallery.
func UpdateShowroom(svc showroomsvc.Service, store *uploads.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input showroomsvc.UpdateInput
		if isMultipart(r) {
			input, err = parseUpdateShowroomForm(r, store)
		} else {
			input, err = parseUpdateShowroomJSON(r)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		showroom, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, showroom)
	}
}

// DeleteShowroom removes a showroom.
func DeleteShowroom(svc showroomsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "showroom deleted"})
	}
}

func parseCreateShowroomJSON(r *http.Request) (showroomsvc.CreateInput, error) {
	var payload createShowroomRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		return showroomsvc.CreateInput{}, err
	}
	return payload.toInput(nil), nil
}

func parseCreateShowroomForm(r *http.Request, store *uploads.Store) (showroomsvc.CreateInput, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return showroomsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}

	payload := createShowroomRequest{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Address: strings.TrimSpace(r.FormValue("address")),
		City:    strings.TrimSpace(r.FormValue("city")),
		State:   strings.TrimSpace(r.FormValue("state")),
		ZipCode: strings.TrimSpace(r.FormValue("zip_code")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Email:   strings.TrimSpace(r.FormValue("email")),
	}

	// Opening hours arrive as a JSON string; a malformed blob is a client
	// error rather than a silent drop.
	raw := strings.TrimSpace(r.FormValue("opening_hours"))
	if raw == "" {
		return showroomsvc.CreateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "opening_hours is required")
	}
	if err := json.Unmarshal([]byte(raw), &payload.OpeningHours); err != nil {
		return showroomsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "opening_hours must be a JSON object")
	}

	if v := strings.TrimSpace(r.FormValue("map_url")); v != "" {
		payload.MapURL = &v
	}
	if raw := r.FormValue("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return showroomsvc.CreateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "is_active must be a boolean")
		}
		payload.IsActive = &active
	}
	// A malformed gallery list degrades to no URL entries.
	if raw := strings.TrimSpace(r.FormValue("gallery_images")); raw != "" {
		var gallery []string
		if err := json.Unmarshal([]byte(raw), &gallery); err == nil {
			payload.GalleryImages = gallery
		}
	}

	if err := validators.ValidateStruct(&payload); err != nil {
		return showroomsvc.CreateInput{}, err
	}

	uploaded, err := saveFormFiles(r, store, "files")
	if err != nil {
		return showroomsvc.CreateInput{}, err
	}
	return payload.toInput(uploaded), nil
}

func parseUpdateShowroomJSON(r *http.Request) (showroomsvc.UpdateInput, error) {
	var payload updateShowroomRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		return showroomsvc.UpdateInput{}, err
	}
	return payload.toInput(nil), nil
}

func parseUpdateShowroomForm(r *http.Request, store *uploads.Store) (showroomsvc.UpdateInput, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return showroomsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}

	var payload updateShowroomRequest
	form := r.MultipartForm.Value

	setString := func(field string, dest **string) {
		if values, ok := form[field]; ok && len(values) > 0 {
			v := values[0]
			*dest = &v
		}
	}
	setString("name", &payload.Name)
	setString("address", &payload.Address)
	setString("city", &payload.City)
	setString("state", &payload.State)
	setString("zip_code", &payload.ZipCode)
	setString("phone", &payload.Phone)
	setString("email", &payload.Email)
	setString("map_url", &payload.MapURL)

	if values, ok := form["opening_hours"]; ok && len(values) > 0 {
		var hours map[string]string
		if err := json.Unmarshal([]byte(values[0]), &hours); err != nil {
			return showroomsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "opening_hours must be a JSON object")
		}
		payload.OpeningHours = &hours
	}
	if values, ok := form["is_active"]; ok && len(values) > 0 {
		active, err := strconv.ParseBool(values[0])
		if err != nil {
			return showroomsvc.UpdateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "is_active must be a boolean")
		}
		payload.IsActive = &active
	}
	if values, ok := form["gallery_images"]; ok && len(values) > 0 {
		var gallery []string
		if err := json.Unmarshal([]byte(values[0]), &gallery); err == nil {
			payload.GalleryImages = &gallery
		}
	}

	uploaded, err := saveFormFiles(r, store, "files")
	if err != nil {
		return showroomsvc.UpdateInput{}, err
	}
	input := payload.toInput(uploaded)
	return input, nil
}

func (p createShowroomRequest) toInput(uploaded []string) showroomsvc.CreateInput {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return showroomsvc.CreateInput{
		Name:           p.Name,
		Address:        p.Address,
		City:           p.City,
		State:          p.State,
		ZipCode:        p.ZipCode,
		Phone:          p.Phone,
		Email:          p.Email,
		OpeningHours:   p.OpeningHours,
		MapURL:         p.MapURL,
		GalleryImages:  p.GalleryImages,
		UploadedImages: uploaded,
		IsActive:       active,
	}
}

func (p updateShowroomRequest) toInput(uploaded []string) showroomsvc.UpdateInput {
	return showroomsvc.UpdateInput{
		Name:           p.Name,
		Address:        p.Address,
		City:           p.City,
		State:          p.State,
		ZipCode:        p.ZipCode,
		Phone:          p.Phone,
		Email:          p.Email,
		OpeningHours:   p.OpeningHours,
		MapURL:         p.MapURL,
		GalleryImages:  p.GalleryImages,
		UploadedImages: uploaded,
		IsActive:       p.IsActive,
	}
}
