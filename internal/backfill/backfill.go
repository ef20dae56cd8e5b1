// Package backfill records the files already in a Drive folder into
// per-label spreadsheet tabs. Each file's name without its extension is the
// label; the file name, creation time and share link are appended to the tab.
package backfill

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/alias"
	"whatsapp-media-bridge/internal/record"
	"whatsapp-media-bridge/internal/resolve"
	"whatsapp-media-bridge/internal/storage"
)

// Lister lists the files of the source folder.
type Lister interface {
	ListFolder(ctx context.Context) ([]storage.File, error)
}

// Summary counts what a Run did.
type Summary struct {
	Files    int
	Inserted int
	Skipped  int
	Created  []string
}

// Syncer copies Drive file entries into spreadsheet tabs.
type Syncer struct {
	lister   Lister
	resolver *resolve.Resolver
	writer   record.Writer
	aliases  *alias.Manager
	logger   *zap.Logger
}

// NewSyncer creates a Syncer. aliases may be nil.
func NewSyncer(lister Lister, resolver *resolve.Resolver, writer record.Writer, aliases *alias.Manager, logger *zap.Logger) *Syncer {
	return &Syncer{
		lister:   lister,
		resolver: resolver,
		writer:   writer,
		aliases:  aliases,
		logger:   logger,
	}
}

// TabLabel strips the last extension from a file name.
func TabLabel(fileName string) string {
	if i := strings.LastIndex(fileName, "."); i > 0 {
		return fileName[:i]
	}
	return fileName
}

// Run lists the folder once and writes one row per file. A failing file is
// logged and skipped; only a failed listing aborts the run.
func (s *Syncer) Run(ctx context.Context) (Summary, error) {
	files, err := s.lister.ListFolder(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list drive folder: %w", err)
	}

	summary := Summary{Files: len(files)}
	if len(files) == 0 {
		s.logger.Info("No files found in Drive folder")
		return summary, nil
	}
	s.logger.Info("Files found in Drive folder", zap.Int("count", len(files)))

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		label := strings.TrimSpace(TabLabel(f.Name))
		if label == "" {
			s.logger.Warn("Skipping file without a usable name", zap.String("file", f.Name))
			summary.Skipped++
			continue
		}
		if s.aliases != nil {
			label = s.aliases.Apply(label)
		}

		res, err := s.resolver.Resolve(ctx, label)
		if err != nil {
			s.logger.Error("Failed to resolve tab, skipping file", zap.String("file", f.Name), zap.Error(err))
			summary.Skipped++
			continue
		}
		if res.IsNew {
			summary.Created = append(summary.Created, res.Title)
		}

		md := record.Metadata{
			Title:     f.Name,
			FileName:  f.Name,
			URL:       storage.ViewLink(f.ID),
			Timestamp: f.CreatedTime,
		}
		if err := s.writer.Write(ctx, res, md); err != nil {
			s.logger.Error("Failed to insert file, skipping", zap.String("file", f.Name), zap.Error(err))
			summary.Skipped++
			continue
		}
		summary.Inserted++
	}

	s.logger.Info("Backfill complete",
		zap.Int("files", summary.Files),
		zap.Int("inserted", summary.Inserted),
		zap.Int("skipped", summary.Skipped),
		zap.Int("tabs_created", len(summary.Created)))
	return summary, nil
}
