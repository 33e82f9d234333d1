// Package upload stores image blobs on disk and hands back the public URL
// path they are served from.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/drivedeal/drivedeal-backend/internal/metrics"
	"github.com/drivedeal/drivedeal-backend/internal/models"
)

// URLPrefix is the public path uploaded images are served from.
const URLPrefix = "/uploads/"

type Store struct {
	dir      string
	maxBytes int64
}

func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// Dir is the on-disk directory backing URLPrefix.
func (s *Store) Dir() string { return s.dir }

// MaxBytes is the upload size cap.
func (s *Store) MaxBytes() int64 { return s.maxBytes }

// Save reads the blob, enforces the size cap and image-only MIME policy by
// sniffing the content (never trusting the client's Content-Type), writes it
// under a generated name and returns its URL path.
func (s *Store) Save(r io.Reader) (string, error) {
	buf, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(buf)) > s.maxBytes {
		metrics.UploadsRejected.Inc()
		return "", models.NewError(models.ErrUpload, "File exceeds the %d byte limit", s.maxBytes)
	}
	mt := mimetype.Detect(buf)
	if !strings.HasPrefix(mt.String(), "image/") {
		metrics.UploadsRejected.Inc()
		return "", models.NewError(models.ErrUpload, "Only image files are allowed")
	}
	name := uuid.NewString() + mt.Extension()
	if err := os.WriteFile(filepath.Join(s.dir, name), buf, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return URLPrefix + name, nil
}
