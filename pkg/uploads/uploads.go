package uploads

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/marivelle/catalog-backend/pkg/config"
)

var (
	// ErrUnsupportedType flags a file whose extension is not on the whitelist.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrTooLarge flags a file exceeding the configured size ceiling.
	ErrTooLarge = errors.New("file too large")
)

// IsPolicyViolation reports whether the error is a client-correctable
// rejection rather than a storage failure.
func IsPolicyViolation(err error) bool {
	return errors.Is(err, ErrUnsupportedType) || errors.Is(err, ErrTooLarge)
}

// File pairs an original filename with its full contents.
type File struct {
	Name string
	Data []byte
}

// Store writes uploaded files to local disk and hands back public URLs.
type Store struct {
	dir       string
	urlPrefix string
	maxSize   int64
	allowed   map[string]struct{}
}

// NewStore prepares the upload directory and returns a Store.
func NewStore(cfg config.UploadsConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("upload dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	allowed := make(map[string]struct{})
	for _, ext := range cfg.Extensions() {
		allowed[strings.ToLower(strings.TrimSpace(ext))] = struct{}{}
	}
	return &Store{
		dir:       cfg.Dir,
		urlPrefix: strings.TrimSuffix(cfg.URLPrefix, "/"),
		maxSize:   cfg.MaxFileSizeBytes,
		allowed:   allowed,
	}, nil
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Validate checks the extension whitelist and the size ceiling.
func (s *Store) Validate(file File) error {
	ext := strings.ToLower(filepath.Ext(file.Name))
	if _, ok := s.allowed[ext]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if s.maxSize > 0 && int64(len(file.Data)) > s.maxSize {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, len(file.Data))
	}
	return nil
}

// Save validates the file, writes it under a random name, and returns its
// public URL.
func (s *Store) Save(file File) (string, error) {
	if err := s.Validate(file); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(file.Name))
	name := uuid.NewString() + ext
	dest := filepath.Join(s.dir, name)
	if err := os.WriteFile(dest, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return path.Join(s.urlPrefix, name), nil
}

// SaveAll validates every file first, then writes them in order. Nothing is
// written when any file fails validation.
func (s *Store) SaveAll(files []File) ([]string, error) {
	for _, file := range files {
		if err := s.Validate(file); err != nil {
			return nil, err
		}
	}
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := s.Save(file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
