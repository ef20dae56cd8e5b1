package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"whatsapp-media-bridge/internal/gauth"
)

// DriveScope is the OAuth scope needed to upload to and list a shared folder.
const DriveScope = drive.DriveScope

// File is a Drive file listing entry.
type File struct {
	ID          string
	Name        string
	CreatedTime time.Time
}

// Drive uploads to and lists a Google Drive folder.
type Drive struct {
	svc      *drive.Service
	folderID string
	logger   *zap.Logger
}

// NewDrive creates a Drive client authenticated by ts.
func NewDrive(ctx context.Context, ts oauth2.TokenSource, folderID string, logger *zap.Logger) (*Drive, error) {
	return newDrive(ctx, folderID, logger, option.WithTokenSource(ts))
}

func newDrive(ctx context.Context, folderID string, logger *zap.Logger, opts ...option.ClientOption) (*Drive, error) {
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Drive{svc: svc, folderID: folderID, logger: logger}, nil
}

// ViewLink returns the sharing link for a Drive file ID.
func ViewLink(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/file/d/%s/view?usp=sharing", fileID)
}

// Upload implements Uploader. The returned URL is the file's web view link.
func (d *Drive) Upload(ctx context.Context, obj Object) (Uploaded, error) {
	folder := d.folderID
	if obj.Folder != "" {
		folder = obj.Folder
	}
	meta := &drive.File{
		Name:     obj.Name,
		MimeType: obj.MimeType,
	}
	if folder != "" {
		meta.Parents = []string{folder}
	}

	d.logger.Info("Starting Drive upload", zap.String("name", obj.Name), zap.String("folder", folder))
	f, err := d.svc.Files.Create(meta).
		Media(bytes.NewReader(obj.Data), googleapi.ContentType(obj.MimeType)).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return Uploaded{}, gauth.Classify("drive", "upload", err)
	}

	link := f.WebViewLink
	if link == "" {
		link = ViewLink(f.Id)
	}
	return Uploaded{ID: f.Id, URL: link}, nil
}

// ListFolder returns the non-trashed files of the configured folder, all pages.
func (d *Drive) ListFolder(ctx context.Context) ([]File, error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false", d.folderID)
	return d.list(ctx, query, 0)
}

// List returns up to limit files visible to the service account. A limit of
// zero lists everything.
func (d *Drive) List(ctx context.Context, limit int) ([]File, error) {
	return d.list(ctx, "", limit)
}

func (d *Drive) list(ctx context.Context, query string, limit int) ([]File, error) {
	var files []File
	pageToken := ""
	for {
		call := d.svc.Files.List().
			Fields("nextPageToken, files(id, name, createdTime)").
			Context(ctx)
		if query != "" {
			call = call.Q(query)
		}
		if limit > 0 {
			call = call.PageSize(int64(limit - len(files)))
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, gauth.Classify("drive", "list files", err)
		}
		for _, f := range resp.Files {
			created, err := time.Parse(time.RFC3339, f.CreatedTime)
			if err != nil {
				d.logger.Warn("Unparseable createdTime", zap.String("file", f.Name), zap.String("value", f.CreatedTime))
			}
			files = append(files, File{ID: f.Id, Name: f.Name, CreatedTime: created})
		}

		if resp.NextPageToken == "" || (limit > 0 && len(files) >= limit) {
			break
		}
		pageToken = resp.NextPageToken
	}
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}
