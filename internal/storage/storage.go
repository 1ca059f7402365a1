// Package storage persists uploaded profile images and returns the URL the
// user record points at.
package storage

import (
	"context"
	"io"
	"path"
)

// ImageStore saves an object and returns its public URL.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	// Delete removes an object saved under name. A missing object is not an
	// error.
	Delete(ctx context.Context, name string) error
}

const profilePrefix = "profile"

func objectKey(name string) string { return path.Join(profilePrefix, path.Base(name)) }
