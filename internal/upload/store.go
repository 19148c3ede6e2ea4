package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"storefront/internal/domain"
	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store writes uploaded product images to a local directory and hands
// back an opaque reference. The rest of the system only stores and
// echoes that reference.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save persists the file under a generated name and returns the reference.
// The client-supplied filename contributes only its extension.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !allowedExtensions[ext] {
		return "", domain.Invalid("unsupported image type %q", ext)
	}

	ref := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	return ref, nil
}

// Dir returns the directory images are served from.
func (s *Store) Dir() string {
	return s.dir
}
