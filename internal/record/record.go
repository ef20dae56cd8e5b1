// Package record writes media metadata into a resolved record.
package record

import (
	"context"
	"time"

	"whatsapp-media-bridge/internal/resolve"
)

// Metadata describes one uploaded media item.
type Metadata struct {
	Title     string
	FileName  string
	URL       string
	Timestamp time.Time
}

// Writer attaches or appends metadata to a resolved record.
type Writer interface {
	Write(ctx context.Context, rec resolve.Result, md Metadata) error
}
