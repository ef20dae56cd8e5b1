package record

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/resolve"
)

// DateTimeLayout renders timestamps the way pt-BR spreadsheets expect them.
const DateTimeLayout = "02/01/2006 15:04:05"

// Log is an append-style store organized as rows, such as a spreadsheet tab.
type Log interface {
	// ReadColumn returns the occupied cells of column in tab.
	ReadColumn(ctx context.Context, tab, column string) ([]string, error)
	// WriteRow writes values starting at column A of the 1-based row.
	WriteRow(ctx context.Context, tab string, row int, values []string) error
}

// AppendWriter appends one row per media item. The next row is read from the
// key column on every write; callers serialize writers per tab.
type AppendWriter struct {
	store     Log
	keyColumn string
	location  *time.Location
	logger    *zap.Logger
}

// NewAppendWriter creates an AppendWriter keyed on column "A". Timestamps are
// rendered in loc, or UTC when loc is nil.
func NewAppendWriter(store Log, loc *time.Location, logger *zap.Logger) *AppendWriter {
	if loc == nil {
		loc = time.UTC
	}
	return &AppendWriter{
		store:     store,
		keyColumn: "A",
		location:  loc,
		logger:    logger,
	}
}

// NextRow returns the 1-based row the next write for rec lands on.
func (w *AppendWriter) NextRow(ctx context.Context, rec resolve.Result) (int, error) {
	if rec.IsNew {
		return 1, nil
	}
	cells, err := w.store.ReadColumn(ctx, rec.ID, w.keyColumn)
	if err != nil {
		return 0, fmt.Errorf("read column %s of %q: %w", w.keyColumn, rec.ID, err)
	}
	return len(cells) + 1, nil
}

// Row renders md as the values written to the log.
func (w *AppendWriter) Row(md Metadata) []string {
	return []string{md.FileName, md.Timestamp.In(w.location).Format(DateTimeLayout), md.URL}
}

// Write appends md to the tab identified by rec.ID.
func (w *AppendWriter) Write(ctx context.Context, rec resolve.Result, md Metadata) error {
	row, err := w.NextRow(ctx, rec)
	if err != nil {
		return err
	}
	if err := w.store.WriteRow(ctx, rec.ID, row, w.Row(md)); err != nil {
		return fmt.Errorf("write row %d of %q: %w", row, rec.ID, err)
	}
	w.logger.Info("Row appended",
		zap.String("tab", rec.ID),
		zap.Int("row", row),
		zap.String("file", md.FileName))
	return nil
}
