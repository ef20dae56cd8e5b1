// Package storage uploads media bytes to object stores and returns a public URL.
package storage

import (
	"context"
	"strings"
)

// Object is one media item to upload.
type Object struct {
	Name     string
	MimeType string
	// Folder overrides the store's default folder when set.
	Folder string
	Data   []byte
}

// Uploaded identifies a stored object.
type Uploaded struct {
	ID  string
	URL string
}

// Uploader stores objects.
type Uploader interface {
	Upload(ctx context.Context, obj Object) (Uploaded, error)
}

// IsVisual reports whether mimeType is an image or a video.
func IsVisual(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return strings.HasPrefix(mimeType, "image/") || strings.HasPrefix(mimeType, "video/")
}
