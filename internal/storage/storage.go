package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ImageStore is the backend that keeps tool photos. The local
// implementation writes to disk; a cloud backend can replace it without
// touching the handlers.
type ImageStore interface {
	// Save stores the image under a generated key and returns the public URL.
	Save(filename string, reader io.Reader) (url string, err error)
	// Open reads a stored image by key.
	Open(key string) (io.ReadCloser, error)
	// Delete removes a stored image. Missing files are not an error.
	Delete(key string) error
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidExt reports whether the filename carries a supported image
// extension.
func ValidExt(filename string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}

// ContentTypeFor maps a stored key to the MIME type served for it.
func ContentTypeFor(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// sanitizeKey rejects keys that escape the storage root.
func sanitizeKey(key string) (string, error) {
	clean := filepath.Clean(key)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return clean, nil
}
