// Package storage provides object storage implementations for product and
// design image uploads.
package storage

import (
	"context"
	"errors"
	"time"

	catalogapp "github.com/tienda/backend/internal/application/catalog"
)

var errMissingStorageKey = errors.New("storage key is required")

// StubObjectStorage stands in for ObjectStorageService when no
// S3-compatible backend is configured. URLs it hands out point nowhere,
// but the upload and confirmation flows stay exercisable in development.
type StubObjectStorage struct {
	// BaseURL prefixes every generated URL, defaulting to
	// https://storage.example.com
	BaseURL string
}

func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{BaseURL: "https://storage.example.com"}
}

var _ catalogapp.ObjectStorageService = (*StubObjectStorage)(nil)

func (s *StubObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	return s.fakeURL("/upload/", storageKey, expiresIn)
}

func (s *StubObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return s.fakeURL("/download/", storageKey, expiresIn)
}

func (s *StubObjectStorage) fakeURL(prefix, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errMissingStorageKey
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + prefix + storageKey + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

// DeleteObject succeeds without doing anything
func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errMissingStorageKey
	}
	return nil
}

// ObjectExists reports true so upload confirmation passes in development
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errMissingStorageKey
	}
	return true, nil
}
