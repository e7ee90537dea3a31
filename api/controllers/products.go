package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/marivelle/catalog-backend/api/responses"
	"github.com/marivelle/catalog-backend/api/validators"
	productsvc "github.com/marivelle/catalog-backend/internal/products"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
	"github.com/marivelle/catalog-backend/pkg/logger"
	"github.com/marivelle/catalog-backend/pkg/pagination"
	"github.com/marivelle/catalog-backend/pkg/uploads"
)

// ListProducts runs the catalog browse query: filters, sort, pagination.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// TrendingProducts returns the newest active products.
func TrendingProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 8, 1, productsvc.TrendingLimitMax)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Trending(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// GetProduct returns one product with variants and ordered images.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type variantRequest struct {
	SKU           string  `json:"sku" validate:"required"`
	Size          string  `json:"size"`
	Color         string  `json:"color"`
	StockQuantity int     `json:"stock_quantity" validate:"min=0"`
	PriceOverride *string `json:"price_override,omitempty"`
}

type createProductRequest struct {
	Name        string                  `json:"name" validate:"required"`
	Slug        string                  `json:"slug" validate:"required"`
	Description string                  `json:"description"`
	BasePrice   string                  `json:"base_price" validate:"required"`
	IsActive    *bool                   `json:"is_active,omitempty"`
	CategoryID  *int64                  `json:"category_id,omitempty"`
	Variants    []variantRequest        `json:"variants,omitempty"`
	Images      []productsvc.ImageInput `json:"images,omitempty"`
}

// CreateProduct accepts either a JSON body or a multipart form with uploaded
// image files; both resolve into the same service input.
func CreateProduct(svc productsvc.Service, store *uploads.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			input productsvc.CreateInput
			err   error
		)
		if isMultipart(r) {
			input, err = parseCreateProductForm(r, store)
		} else {
			input, err = parseCreateProductJSON(r)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	Name        *string                  `json:"name,omitempty"`
	Slug        *string                  `json:"slug,omitempty"`
	Description *string                  `json:"description,omitempty"`
	BasePrice   *string                  `json:"base_price,omitempty"`
	IsActive    *bool                    `json:"is_active,omitempty"`
	CategoryID  *int64                   `json:"category_id,omitempty"`
	Variants    *[]variantRequest        `json:"variants,omitempty"`
	Images      *[]productsvc.ImageInput `json:"images,omitempty"`
}

// UpdateProduct mutates provided fields; a supplied images list reconciles
// the stored gallery, uploads are appended either way.
func UpdateProduct(svc productsvc.Service, store *uploads.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input productsvc.UpdateInput
		if isMultipart(r) {
			input, err = parseUpdateProductForm(r, store)
		} else {
			input, err = parseUpdateProductJSON(r)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct removes a product; variants and images cascade.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, map[string]string{"message": "product deleted"})
	}
}

func parseListInput(r *http.Request) (productsvc.ListInput, error) {
	var input productsvc.ListInput
	q := r.URL.Query()

	var pageParams pagination.Params
	for key, dest := range map[string]**int{
		"page":      &pageParams.Page,
		"page_size": &pageParams.PageSize,
		"skip":      &pageParams.Skip,
		"limit":     &pageParams.Limit,
	} {
		value, err := validators.ParseQueryIntPtr(r, key)
		if err != nil {
			return input, err
		}
		*dest = value
	}
	input.Pagination = pageParams

	input.Filters.CategoryIDs = productsvc.ParseCategoryIDs(q.Get("category_ids"))
	if raw := strings.TrimSpace(q.Get("category_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": "category_id"})
		}
		input.Filters.CategoryID = &id
	}

	input.Filters.Search = strings.TrimSpace(q.Get("search"))
	input.Filters.Color = strings.TrimSpace(q.Get("color"))
	input.Filters.Size = strings.TrimSpace(q.Get("size"))

	for key, dest := range map[string]**decimal.Decimal{
		"min_price": &input.Filters.MinPrice,
		"max_price": &input.Filters.MaxPrice,
	} {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a decimal").WithDetails(map[string]any{"field": key})
		}
		*dest = &value
	}

	input.SortBy = strings.TrimSpace(q.Get("sort_by"))
	return input, nil
}

func parseCreateProductJSON(r *http.Request) (productsvc.CreateInput, error) {
	var payload createProductRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		return productsvc.CreateInput{}, err
	}
	return payload.toInput(nil)
}

func parseCreateProductForm(r *http.Request, store *uploads.Store) (productsvc.CreateInput, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return productsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}

	payload := createProductRequest{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Slug:        strings.TrimSpace(r.FormValue("slug")),
		Description: r.FormValue("description"),
		BasePrice:   strings.TrimSpace(r.FormValue("base_price")),
	}
	if raw := r.FormValue("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return productsvc.CreateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "is_active must be a boolean")
		}
		payload.IsActive = &active
	}
	if raw := strings.TrimSpace(r.FormValue("category_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return productsvc.CreateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "category_id must be numeric")
		}
		payload.CategoryID = &id
	}
	// Malformed optional JSON blobs (variants, images) degrade to no
	// entries instead of rejecting the whole request.
	if raw := strings.TrimSpace(r.FormValue("variants")); raw != "" {
		var variants []variantRequest
		if err := json.Unmarshal([]byte(raw), &variants); err == nil {
			payload.Variants = variants
		}
	}
	if raw := strings.TrimSpace(r.FormValue("images")); raw != "" {
		var entries []productsvc.ImageInput
		if err := json.Unmarshal([]byte(raw), &entries); err == nil {
			payload.Images = entries
		}
	}
	if err := validators.ValidateStruct(&payload); err != nil {
		return productsvc.CreateInput{}, err
	}

	uploaded, err := saveFormFiles(r, store, "files")
	if err != nil {
		return productsvc.CreateInput{}, err
	}
	return payload.toInput(uploaded)
}

func parseUpdateProductJSON(r *http.Request) (productsvc.UpdateInput, error) {
	var payload updateProductRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		return productsvc.UpdateInput{}, err
	}
	return payload.toInput(nil)
}

func parseUpdateProductForm(r *http.Request, store *uploads.Store) (productsvc.UpdateInput, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return productsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}

	var payload updateProductRequest
	form := r.MultipartForm.Value

	if values, ok := form["name"]; ok && len(values) > 0 {
		v := strings.TrimSpace(values[0])
		payload.Name = &v
	}
	if values, ok := form["slug"]; ok && len(values) > 0 {
		v := strings.TrimSpace(values[0])
		payload.Slug = &v
	}
	if values, ok := form["description"]; ok && len(values) > 0 {
		payload.Description = &values[0]
	}
	if values, ok := form["base_price"]; ok && len(values) > 0 {
		v := strings.TrimSpace(values[0])
		payload.BasePrice = &v
	}
	if values, ok := form["is_active"]; ok && len(values) > 0 {
		active, err := strconv.ParseBool(values[0])
		if err != nil {
			return productsvc.UpdateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "is_active must be a boolean")
		}
		payload.IsActive = &active
	}
	if values, ok := form["category_id"]; ok && len(values) > 0 {
		id, err := strconv.ParseInt(strings.TrimSpace(values[0]), 10, 64)
		if err != nil {
			return productsvc.UpdateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "category_id must be numeric")
		}
		payload.CategoryID = &id
	}
	// unparseable variants blob means "leave variants alone"
	if values, ok := form["variants"]; ok && len(values) > 0 {
		var variants []variantRequest
		if err := json.Unmarshal([]byte(values[0]), &variants); err == nil {
			payload.Variants = &variants
		}
	}
	if values, ok := form["images"]; ok && len(values) > 0 {
		var entries []productsvc.ImageInput
		if err := json.Unmarshal([]byte(values[0]), &entries); err == nil {
			payload.Images = &entries
		}
	}

	uploaded, err := saveFormFiles(r, store, "files")
	if err != nil {
		return productsvc.UpdateInput{}, err
	}
	return payload.toInput(uploaded)
}

func (p createProductRequest) toInput(uploaded []string) (productsvc.CreateInput, error) {
	price, err := decimal.NewFromString(p.BasePrice)
	if err != nil {
		return productsvc.CreateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "base_price must be a decimal")
	}

	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}

	variants, err := toVariantInputs(p.Variants)
	if err != nil {
		return productsvc.CreateInput{}, err
	}

	return productsvc.CreateInput{
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		BasePrice:         price,
		IsActive:          active,
		CategoryID:        p.CategoryID,
		Variants:          variants,
		Images:            p.Images,
		UploadedImageURLs: uploaded,
	}, nil
}

func (p updateProductRequest) toInput(uploaded []string) (productsvc.UpdateInput, error) {
	input := productsvc.UpdateInput{
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		IsActive:          p.IsActive,
		CategoryID:        p.CategoryID,
		Images:            p.Images,
		UploadedImageURLs: uploaded,
	}

	if p.BasePrice != nil {
		price, err := decimal.NewFromString(*p.BasePrice)
		if err != nil {
			return productsvc.UpdateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "base_price must be a decimal")
		}
		input.BasePrice = &price
	}
	if p.Variants != nil {
		variants, err := toVariantInputs(*p.Variants)
		if err != nil {
			return productsvc.UpdateInput{}, err
		}
		input.Variants = &variants
	}
	return input, nil
}

func toVariantInputs(requests []variantRequest) ([]productsvc.VariantInput, error) {
	variants := make([]productsvc.VariantInput, 0, len(requests))
	for _, req := range requests {
		variant := productsvc.VariantInput{
			SKU:           req.SKU,
			Size:          req.Size,
			Color:         req.Color,
			StockQuantity: req.StockQuantity,
		}
		if req.PriceOverride != nil {
			override, err := decimal.NewFromString(*req.PriceOverride)
			if err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_override must be a decimal")
			}
			variant.PriceOverride = &override
		}
		variants = append(variants, variant)
	}
	return variants, nil
}

func isMultipart(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data")
}

func saveFormFiles(r *http.Request, store *uploads.Store, field string) ([]string, error) {
	if r.MultipartForm == nil || store == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}

	files := make([]uploads.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading uploaded file")
		}
		file, err := readMultipartFile(f, header)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, *file)
	}

	urls, err := store.SaveAll(files)
	if err != nil {
		return nil, uploadError(err)
	}
	return urls, nil
}
