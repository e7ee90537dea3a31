package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	settingsvc "github.com/marivelle/catalog-backend/internal/settings"
)

type stubSettingsService struct {
	lastBulk map[string]any
}

func (s *stubSettingsService) List(context.Context, string) ([]settingsvc.SettingDTO, error) {
	return nil, nil
}

func (s *stubSettingsService) Get(context.Context, string) (*settingsvc.SettingDTO, error) {
	return nil, nil
}

func (s *stubSettingsService) Create(context.Context, settingsvc.CreateInput) (*settingsvc.SettingDTO, error) {
	return nil, nil
}

func (s *stubSettingsService) Update(context.Context, string, settingsvc.UpdateInput) (*settingsvc.SettingDTO, error) {
	return nil, nil
}

func (s *stubSettingsService) BulkUpdate(_ context.Context, values map[string]any) (*settingsvc.BulkUpdateResult, error) {
	s.lastBulk = values
	return &settingsvc.BulkUpdateResult{Message: "ok"}, nil
}

func (s *stubSettingsService) Public(context.Context) (map[string]any, error) {
	return nil, nil
}

func postBulkUpdate(t *testing.T, svc settingsvc.Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := BulkUpdateSettings(svc, nil)
	r := httptest.NewRequest("POST", "/settings/bulk-update", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestBulkUpdateSettingsUnwrapsSettingsObject(t *testing.T) {
	svc := &stubSettingsService{}
	w := postBulkUpdate(t, svc, `{"settings":{"maintenance_mode":true,"store_name":"Marivelle"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(svc.lastBulk) != 2 {
		t.Fatalf("expected 2 keys, got %v", svc.lastBulk)
	}
	if _, ok := svc.lastBulk["settings"]; ok {
		t.Fatalf("wrapper key leaked into the key set: %v", svc.lastBulk)
	}
	if got := svc.lastBulk["maintenance_mode"]; got != true {
		t.Fatalf("expected maintenance_mode=true, got %v", got)
	}
}

func TestBulkUpdateSettingsAcceptsBareMap(t *testing.T) {
	svc := &stubSettingsService{}
	w := postBulkUpdate(t, svc, `{"store_name":"Marivelle"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := svc.lastBulk["store_name"]; got != "Marivelle" {
		t.Fatalf("expected store_name passthrough, got %v", svc.lastBulk)
	}
}

func TestBulkUpdateSettingsRejectsNonObjectWrapper(t *testing.T) {
	svc := &stubSettingsService{}
	w := postBulkUpdate(t, svc, `{"settings":"oops"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-object settings, got %d", w.Code)
	}
	if svc.lastBulk != nil {
		t.Fatalf("service should not be called, got %v", svc.lastBulk)
	}
}

func TestBulkUpdateSettingsRejectsEmptyBody(t *testing.T) {
	svc := &stubSettingsService{}
	w := postBulkUpdate(t, svc, `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty payload, got %d", w.Code)
	}
}
