// Package storage persists uploaded images on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Config locates the upload directory and the URL prefix it is served under.
type Config struct {
	Dir          string
	PublicPrefix string
}

// LoadConfigFromEnv reads UPLOAD_DIR, defaulting to ./uploads served at /uploads.
func LoadConfigFromEnv() Config {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return Config{Dir: dir, PublicPrefix: "/uploads"}
}

// LocalStorage writes files under Config.Dir.
type LocalStorage struct {
	cfg Config
}

// NewLocalStorage creates a LocalStorage.
func NewLocalStorage(cfg Config) *LocalStorage {
	if cfg.PublicPrefix == "" {
		cfg.PublicPrefix = "/uploads"
	}
	return &LocalStorage{cfg: cfg}
}

// Save writes r to relPath (slash separated, relative to the upload dir) and returns its public path.
func (s *LocalStorage) Save(ctx context.Context, relPath string, r io.Reader) (string, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path.Join(s.cfg.PublicPrefix, path.Clean("/"+relPath)), nil
}

// Delete removes the file behind a public path returned by Save. A missing file is not an error.
func (s *LocalStorage) Delete(ctx context.Context, publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, s.cfg.PublicPrefix+"/")
	if !ok {
		return fmt.Errorf("path %q is outside %s", publicPath, s.cfg.PublicPrefix)
	}
	full, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Dir returns the directory files are written to.
func (s *LocalStorage) Dir() string {
	return s.cfg.Dir
}

// resolve maps relPath into the upload dir, rejecting traversal.
func (s *LocalStorage) resolve(relPath string) (string, error) {
	clean := path.Clean("/" + relPath)
	if clean == "/" {
		return "", errors.New("empty path")
	}
	return filepath.Join(s.cfg.Dir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
