package controllers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marivelle/catalog-backend/api/responses"
	"github.com/marivelle/catalog-backend/api/validators"
	categorysvc "github.com/marivelle/catalog-backend/internal/categories"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
	"github.com/marivelle/catalog-backend/pkg/logger"
	"github.com/marivelle/catalog-backend/pkg/uploads"
)

// ListCategories returns root categories with their immediate children.
func ListCategories(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		categories, err := svc.ListRoots(r.Context(), skip, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// GetCategory returns one category with its children.
func GetCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug" validate:"required"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	ParentID    *int64  `json:"parent_id,omitempty"`
}

// CreateCategory inserts a category; parent existence is validated.
func CreateCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		active := true
		if payload.IsActive != nil {
			active = *payload.IsActive
		}
		category, err := svc.Create(r.Context(), categorysvc.CreateInput{
			Name:        payload.Name,
			Slug:        payload.Slug,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
			IsActive:    active,
			ParentID:    payload.ParentID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

type updateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	ParentID    *int64  `json:"parent_id,omitempty"`
}

// UpdateCategory mutates provided fields only.
func UpdateCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Update(r.Context(), id, categorysvc.UpdateInput{
			Name:        payload.Name,
			Slug:        payload.Slug,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
			IsActive:    payload.IsActive,
			ParentID:    payload.ParentID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// DeleteCategory removes a category; children are re-rooted by the FK.
func DeleteCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, map[string]string{"message": "category deleted"})
	}
}

// UploadCategoryImage stores a multipart image and points the category at it.
func UploadCategoryImage(svc categorysvc.Service, store *uploads.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, err := readUploadedFile(r, "file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		url, err := store.Save(*file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, uploadError(err))
			return
		}

		category, err := svc.SetImage(r.Context(), id, url)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

const maxMultipartMemory = 32 << 20

func readUploadedFile(r *http.Request, field string) (*uploads.File, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file is required")
	}
	defer file.Close()
	return readMultipartFile(file, header)
}

func readMultipartFile(file multipart.File, header *multipart.FileHeader) (*uploads.File, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading uploaded file")
	}
	return &uploads.File{Name: header.Filename, Data: data}, nil
}

func uploadError(err error) error {
	switch {
	case err == nil:
		return nil
	case pkgerrors.As(err) != nil:
		return err
	case uploads.IsPolicyViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "rejected upload")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing uploaded file")
	}
}
