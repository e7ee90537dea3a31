package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/gorm"

	pkgauth "github.com/marivelle/catalog-backend/pkg/auth"
	"github.com/marivelle/catalog-backend/pkg/config"
	"github.com/marivelle/catalog-backend/pkg/db/models"
)

type fakeUserLoader struct {
	users map[int64]*models.User
}

func (f *fakeUserLoader) FindByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func authTestConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "catalog", ExpirationMinutes: 30}
}

func mintTestToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(authTestConfig(), time.Now(), userID)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthSeedsContextUser(t *testing.T) {
	loader := &fakeUserLoader{users: map[int64]*models.User{
		1: {ID: 1, Email: "a@example.com", IsActive: true},
	}}

	var seen *models.User
	handler := Auth(authTestConfig(), loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+mintTestToken(t, 1))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if seen == nil || seen.ID != 1 {
		t.Fatalf("expected user 1 in context, got %+v", seen)
	}
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	loader := &fakeUserLoader{users: map[int64]*models.User{}}
	handler := Auth(authTestConfig(), loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing header, got %d", w.Code)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", w.Code)
	}

	// Token subject points at a deleted account.
	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+mintTestToken(t, 99))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for orphan token, got %d", w.Code)
	}
}

func TestAuthRejectsInactiveUser(t *testing.T) {
	loader := &fakeUserLoader{users: map[int64]*models.User{
		2: {ID: 2, Email: "b@example.com", IsActive: false},
	}}
	handler := Auth(authTestConfig(), loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+mintTestToken(t, 2))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for inactive user, got %d", w.Code)
	}
}

func TestRequireSuperuser(t *testing.T) {
	handler := RequireSuperuser(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(WithUser(r.Context(), &models.User{ID: 1, IsSuperuser: false}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for regular user, got %d", w.Code)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(WithUser(r.Context(), &models.User{ID: 1, IsSuperuser: true}))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for superuser, got %d", w.Code)
	}

	r = httptest.NewRequest("GET", "/", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth context, got %d", w.Code)
	}
}
