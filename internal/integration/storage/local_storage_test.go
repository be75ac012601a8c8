package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorage_SaveAndRemove(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewLocalStorage(root, "/uploads/", 0)

	publicPath, err := s.Save(ctx, "bills", "logo.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if publicPath != "/uploads/bills/logo.png" {
		t.Errorf("expected /uploads/bills/logo.png, got %s", publicPath)
	}

	content, err := os.ReadFile(filepath.Join(root, "bills", "logo.png"))
	if err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	if string(content) != "png-bytes" {
		t.Errorf("unexpected content %q", content)
	}

	if err := s.Remove(ctx, publicPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "bills", "logo.png")); !os.IsNotExist(err) {
		t.Errorf("expected file to be removed, stat error: %v", err)
	}

	if err := s.Remove(ctx, publicPath); err != nil {
		t.Errorf("removing a missing file should be ignored, got %v", err)
	}
}

func TestLocalStorage_Save_Rejects(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		content  string
		maxBytes int64
		wantErr  error
	}{
		{name: "path traversal", filename: "../escape.png", content: "x"},
		{name: "too large", filename: "big.png", content: "0123456789", maxBytes: 4, wantErr: ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			s := NewLocalStorage(root, "/uploads", tt.maxBytes)

			_, err := s.Save(ctx, "avatars", tt.filename, strings.NewReader(tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}

			entries, _ := os.ReadDir(filepath.Join(root, "avatars"))
			if len(entries) != 0 {
				t.Errorf("expected no file left behind, found %d", len(entries))
			}
		})
	}
}

func TestLocalStorage_Remove_OutsidePublicPath(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/uploads", 0)
	if err := s.Remove(context.Background(), "/etc/passwd"); err == nil {
		t.Error("expected error for a path outside the public prefix")
	}
}
