package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalImageStore keeps tool photos on the local filesystem and serves
// them back through the image download endpoint.
type LocalImageStore struct {
	baseURL   string
	imagesDir string
}

func NewLocalImageStore(baseURL, uploadsDir string) (*LocalImageStore, error) {
	imagesDir := filepath.Join(uploadsDir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}
	return &LocalImageStore{
		baseURL:   strings.TrimRight(baseURL, "/"),
		imagesDir: imagesDir,
	}, nil
}

func (s *LocalImageStore) Save(filename string, reader io.Reader) (string, error) {
	if !ValidExt(filename) {
		return "", fmt.Errorf("unsupported image type: %s", filepath.Ext(filename))
	}

	key := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	fullPath := filepath.Join(s.imagesDir, key)

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/api/images/%s", s.baseURL, key), nil
}

func (s *LocalImageStore) Open(key string) (io.ReadCloser, error) {
	clean, err := sanitizeKey(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.imagesDir, clean))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalImageStore) Delete(key string) error {
	clean, err := sanitizeKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.imagesDir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
