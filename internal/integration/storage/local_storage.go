// Package storage stores uploaded files on the local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// LocalStorage writes files below a root directory served under a public URL prefix.
type LocalStorage struct {
	root       string
	publicPath string
	maxBytes   int64
}

// NewLocalStorage creates a new LocalStorage. A maxBytes of zero disables the size limit.
func NewLocalStorage(root, publicPath string, maxBytes int64) *LocalStorage {
	return &LocalStorage{
		root:       root,
		publicPath: "/" + strings.Trim(publicPath, "/"),
		maxBytes:   maxBytes,
	}
}

// ErrFileTooLarge is returned when an upload exceeds the configured size.
var ErrFileTooLarge = errors.New("file exceeds the maximum upload size")

// Save stores the content under folder and returns its public path.
func (s *LocalStorage) Save(ctx context.Context, folder, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filename != filepath.Base(filename) || filename == "." || filename == ".." {
		return "", fmt.Errorf("invalid file name %q", filename)
	}

	dir := filepath.Join(s.root, filepath.Clean("/"+folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	target := filepath.Join(dir, filename)
	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	reader := content
	if s.maxBytes > 0 {
		reader = io.LimitReader(content, s.maxBytes+1)
	}
	written, copyErr := io.Copy(file, reader)
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(target)
		return "", fmt.Errorf("failed to write file: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(target)
		return "", fmt.Errorf("failed to write file: %w", closeErr)
	case s.maxBytes > 0 && written > s.maxBytes:
		_ = os.Remove(target)
		return "", ErrFileTooLarge
	}

	return path.Join(s.publicPath, filepath.ToSlash(filepath.Clean("/"+folder)), filename), nil
}

// Remove deletes a previously saved file. Missing files are ignored.
func (s *LocalStorage) Remove(ctx context.Context, publicPath string) error {
	rel, ok := strings.CutPrefix(path.Clean(publicPath), s.publicPath+"/")
	if !ok {
		return fmt.Errorf("path %q is outside of %s", publicPath, s.publicPath)
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Ensure LocalStorage implements adapter.FileStorage.
var _ adapter.FileStorage = (*LocalStorage)(nil)
