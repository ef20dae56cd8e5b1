package record

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/resolve"
)

// Attacher adds a URL attachment to a record, such as a Trello card.
type Attacher interface {
	AttachURL(ctx context.Context, recordID, title, url string) error
}

// AttachmentWriter writes to attachment-style stores. Each write is a single
// call and needs no position tracking.
type AttachmentWriter struct {
	store  Attacher
	logger *zap.Logger
}

// NewAttachmentWriter creates an AttachmentWriter.
func NewAttachmentWriter(store Attacher, logger *zap.Logger) *AttachmentWriter {
	return &AttachmentWriter{store: store, logger: logger}
}

// Write attaches md.URL to the record under md.Title.
func (w *AttachmentWriter) Write(ctx context.Context, rec resolve.Result, md Metadata) error {
	if err := w.store.AttachURL(ctx, rec.ID, md.Title, md.URL); err != nil {
		return fmt.Errorf("attach url to %q: %w", rec.Title, err)
	}
	w.logger.Info("Attachment added", zap.String("record", rec.Title), zap.String("url", md.URL))
	return nil
}
