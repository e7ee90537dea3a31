package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/marivelle/catalog-backend/api/middleware"
	wishlistsvc "github.com/marivelle/catalog-backend/internal/wishlist"
	"github.com/marivelle/catalog-backend/pkg/db/models"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
)

type stubWishlistService struct {
	added map[int64]bool
}

func (s *stubWishlistService) List(context.Context, int64, int, int) ([]wishlistsvc.WishlistDTO, error) {
	return nil, nil
}

func (s *stubWishlistService) Add(_ context.Context, _ int64, productID int64) (*wishlistsvc.WishlistDTO, error) {
	if s.added == nil {
		s.added = map[int64]bool{}
	}
	if s.added[productID] {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product already in wishlist")
	}
	s.added[productID] = true
	return &wishlistsvc.WishlistDTO{ProductID: productID}, nil
}

func (s *stubWishlistService) Remove(context.Context, int64, int64) error { return nil }

func authedRequest(r *http.Request) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), &models.User{ID: 1, IsActive: true}))
}

func TestAddToWishlistRequiresAuthContext(t *testing.T) {
	handler := AddToWishlist(&stubWishlistService{}, nil)

	r := httptest.NewRequest("POST", "/wishlist", strings.NewReader(`{"product_id":5}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", w.Code)
	}
}

func TestAddToWishlistCreatesThenRejectsDuplicate(t *testing.T) {
	svc := &stubWishlistService{}
	handler := AddToWishlist(svc, nil)

	r := authedRequest(httptest.NewRequest("POST", "/wishlist", strings.NewReader(`{"product_id":5}`)))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	r = authedRequest(httptest.NewRequest("POST", "/wishlist", strings.NewReader(`{"product_id":5}`)))
	r.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate, got %d", w.Code)
	}
}

func TestAddToWishlistValidatesProductID(t *testing.T) {
	handler := AddToWishlist(&stubWishlistService{}, nil)

	r := authedRequest(httptest.NewRequest("POST", "/wishlist", strings.NewReader(`{"product_id":0}`)))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing product_id, got %d", w.Code)
	}
}
