package core

import (
	"context"
	"io"
)

// UploadService stores uploaded files and returns a stable reference to them.
type UploadService interface {
	// Store saves the content of r under a name derived from filename and returns its URL.
	Store(ctx context.Context, filename string, r io.Reader) (string, error)
}
