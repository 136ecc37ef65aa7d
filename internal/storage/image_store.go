package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrEmptyFilename indicates an upload with no usable filename.
var ErrEmptyFilename = errors.New("empty filename")

// ImageStore is the blob store behind ticket images, keyed by filename.
// Writes are independent of the database commit; a crash between the two
// leaves a ticket referencing a missing image, which is accepted.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// DiskImageStore writes images under a configured upload directory.
type DiskImageStore struct {
	dir string
}

// NewDiskImageStore builds a store rooted at dir.
func NewDiskImageStore(dir string) *DiskImageStore {
	return &DiskImageStore{dir: dir}
}

// Save sanitizes the filename and writes the image, returning the stored
// filename used as the ticket's image reference.
func (s *DiskImageStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return "", ErrEmptyFilename
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return name, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces an uploaded filename to a flat, safe name:
// path separators and special characters are stripped so the result can
// never escape the upload directory.
func SanitizeFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._-")
	if name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}
