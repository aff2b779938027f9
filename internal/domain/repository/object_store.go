package repository

import (
	"context"
	"io"
)

// ObjectStore persists uploaded files and returns a URL to reach them.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}
