// internal/storage/local.go
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrNotImage    = errors.New("file is not a supported image")
	ErrTooLarge    = errors.New("file exceeds the upload limit")
	ErrInvalidPath = errors.New("invalid storage path")
)

// allowedImageTypes maps accepted MIME types to the extension files are stored with.
var allowedImageTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// LocalStorage keeps uploads on disk below root and serves them under baseURL.
type LocalStorage struct {
	root     string
	baseURL  string
	maxBytes int64
}

func NewLocalStorage(root, baseURL string, maxBytes int64) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating media root: %w", err)
	}
	return &LocalStorage{
		root:     root,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
	}, nil
}

// SaveImage validates content as an image and writes it to dir. It returns
// the path relative to the storage root, always with forward slashes.
func (s *LocalStorage) SaveImage(ctx context.Context, dir string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if dir == "" || strings.Contains(dir, "..") || path.IsAbs(dir) {
		return "", ErrInvalidPath
	}

	reader := content
	if s.maxBytes > 0 {
		reader = io.LimitReader(content, s.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	mime := mimetype.Detect(data)
	ext, ok := allowedImageTypes[mime.String()]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mime.String())
	}

	rel := path.Join(dir, uuid.NewString()+ext)
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return rel, nil
}

// Open returns the stored file at rel.
func (s *LocalStorage) Open(rel string) (io.ReadCloser, error) {
	full, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// ReadAll is a convenience for small files such as images bound for the CRM.
func (s *LocalStorage) ReadAll(rel string) (io.Reader, error) {
	f, err := s.Open(rel)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func (s *LocalStorage) Delete(rel string) error {
	full, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// URL returns the public URL of rel. Empty paths stay empty.
func (s *LocalStorage) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return s.baseURL + "/" + strings.TrimLeft(rel, "/")
}

func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) resolve(rel string) (string, error) {
	clean := path.Clean("/" + rel)
	if clean == "/" {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
