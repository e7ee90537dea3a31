package uploads_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marivelle/catalog-backend/pkg/config"
	"github.com/marivelle/catalog-backend/pkg/uploads"
)

func newTestStore(t *testing.T, maxSize int64) *uploads.Store {
	t.Helper()
	cfg := config.UploadsConfig{
		Dir:               t.TempDir(),
		MaxFileSizeBytes:  maxSize,
		AllowedExtensions: ".jpg,.jpeg,.png,.gif,.webp",
		URLPrefix:         "/uploads",
	}
	store, err := uploads.NewStore(cfg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSaveWritesFileAndReturnsURL(t *testing.T) {
	store := newTestStore(t, 1024)

	url, err := store.Save(uploads.File{Name: "photo.JPG", Data: []byte("fake-image")})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") {
		t.Fatalf("expected public url under /uploads/, got %q", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("expected lowercased extension, got %q", url)
	}
	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "fake-image" {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	store := newTestStore(t, 1024)

	_, err := store.Save(uploads.File{Name: "script.exe", Data: []byte("nope")})
	if !errors.Is(err, uploads.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store := newTestStore(t, 4)

	_, err := store.Save(uploads.File{Name: "big.png", Data: []byte("12345")})
	if !errors.Is(err, uploads.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestSaveAllIsAllOrNothing(t *testing.T) {
	store := newTestStore(t, 1024)

	_, err := store.SaveAll([]uploads.File{
		{Name: "ok.png", Data: []byte("a")},
		{Name: "bad.txt", Data: []byte("b")},
	})
	if !errors.Is(err, uploads.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	entries, readErr := os.ReadDir(store.Dir())
	if readErr != nil {
		t.Fatalf("reading dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files written, found %d", len(entries))
	}

	urls, err := store.SaveAll([]uploads.File{
		{Name: "one.png", Data: []byte("a")},
		{Name: "two.webp", Data: []byte("b")},
	})
	if err != nil {
		t.Fatalf("save all failed: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(urls))
	}
	if urls[0] == urls[1] {
		t.Fatalf("expected distinct generated names")
	}
}
