package adapter

import (
	"context"
	"io"
)

// FileStorage stores uploaded files and exposes them under a public path.
type FileStorage interface {
	// Save stores the content under folder and returns its public path.
	Save(ctx context.Context, folder, filename string, content io.Reader) (string, error)

	// Remove deletes a previously saved file. Missing files are ignored.
	Remove(ctx context.Context, publicPath string) error
}

// FileUpload is a file received from a client.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}
