package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	productsvc "github.com/marivelle/catalog-backend/internal/products"
)

type stubProductService struct {
	lastList     productsvc.ListInput
	lastTrending int
	lastCreate   productsvc.CreateInput
	lastUpdate   productsvc.UpdateInput
}

func (s *stubProductService) List(_ context.Context, input productsvc.ListInput) (*productsvc.ListResult, error) {
	s.lastList = input
	return &productsvc.ListResult{Items: []productsvc.ProductDTO{}}, nil
}

func (s *stubProductService) Get(context.Context, int64) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (s *stubProductService) Trending(_ context.Context, limit int) ([]productsvc.ProductDTO, error) {
	s.lastTrending = limit
	return nil, nil
}

func (s *stubProductService) Create(_ context.Context, input productsvc.CreateInput) (*productsvc.ProductDTO, error) {
	s.lastCreate = input
	return &productsvc.ProductDTO{}, nil
}

func (s *stubProductService) Update(_ context.Context, _ int64, input productsvc.UpdateInput) (*productsvc.ProductDTO, error) {
	s.lastUpdate = input
	return &productsvc.ProductDTO{}, nil
}

func (s *stubProductService) Delete(context.Context, int64) error { return nil }

func TestListProductsParsesComposerParams(t *testing.T) {
	svc := &stubProductService{}
	handler := ListProducts(svc, nil)

	r := httptest.NewRequest("GET", "/products?page=2&page_size=10&category_ids=1,2,x,3&search=shirt&min_price=9.99&max_price=49.50&color=red&size=M&sort_by=price_high", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got := svc.lastList
	if got.Pagination.Page == nil || *got.Pagination.Page != 2 {
		t.Fatalf("page not parsed: %+v", got.Pagination)
	}
	if got.Pagination.PageSize == nil || *got.Pagination.PageSize != 10 {
		t.Fatalf("page_size not parsed: %+v", got.Pagination)
	}
	if len(got.Filters.CategoryIDs) != 3 {
		t.Fatalf("expected malformed token dropped, got %v", got.Filters.CategoryIDs)
	}
	if got.Filters.Search != "shirt" || got.Filters.Color != "red" || got.Filters.Size != "M" {
		t.Fatalf("string filters not parsed: %+v", got.Filters)
	}
	if got.Filters.MinPrice == nil || got.Filters.MinPrice.String() != "9.99" {
		t.Fatalf("min_price not parsed: %v", got.Filters.MinPrice)
	}
	if got.Filters.MaxPrice == nil || got.Filters.MaxPrice.String() != "49.5" {
		t.Fatalf("max_price not parsed: %v", got.Filters.MaxPrice)
	}
	if got.SortBy != "price_high" {
		t.Fatalf("sort_by not parsed: %q", got.SortBy)
	}
}

func TestListProductsRejectsBadDecimal(t *testing.T) {
	handler := ListProducts(&stubProductService{}, nil)

	r := httptest.NewRequest("GET", "/products?min_price=cheap", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad decimal, got %d", w.Code)
	}
}

func TestTrendingProductsClampsLimit(t *testing.T) {
	svc := &stubProductService{}
	handler := TrendingProducts(svc, nil)

	r := httptest.NewRequest("GET", "/products/trending", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastTrending != 8 {
		t.Fatalf("expected default limit 8, got %d", svc.lastTrending)
	}

	r = httptest.NewRequest("GET", "/products/trending?limit=50", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 beyond max limit, got %d", w.Code)
	}
}

func multipartProductForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestCreateProductFormMalformedVariantsDegradesToNone(t *testing.T) {
	svc := &stubProductService{}
	handler := CreateProduct(svc, nil, nil)

	body, contentType := multipartProductForm(t, map[string]string{
		"name":       "Linen Shirt",
		"slug":       "linen-shirt",
		"base_price": "29.99",
		"variants":   `{not json`,
	})
	r := httptest.NewRequest("POST", "/products", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(svc.lastCreate.Variants) != 0 {
		t.Fatalf("expected no variants, got %v", svc.lastCreate.Variants)
	}
	if svc.lastCreate.Slug != "linen-shirt" {
		t.Fatalf("expected the product fields to survive, got %+v", svc.lastCreate)
	}
}

func TestUpdateProductFormMalformedVariantsLeavesVariantsAlone(t *testing.T) {
	svc := &stubProductService{}
	handler := UpdateProduct(svc, nil, nil)

	body, contentType := multipartProductForm(t, map[string]string{
		"name":     "Renamed",
		"variants": `[{"sku":`,
	})
	r := httptest.NewRequest("PUT", "/products/3", body)
	r.Header.Set("Content-Type", contentType)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "3")
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.lastUpdate.Variants != nil {
		t.Fatalf("expected nil variants pointer, got %v", *svc.lastUpdate.Variants)
	}
	if svc.lastUpdate.Name == nil || *svc.lastUpdate.Name != "Renamed" {
		t.Fatalf("expected name update to survive, got %+v", svc.lastUpdate)
	}
}
