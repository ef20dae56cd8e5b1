package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/apperr"
)

// Cloudinary uploads media to a Cloudinary folder and returns its secure URL.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

// NewCloudinary creates a Cloudinary uploader.
func NewCloudinary(cloudName, apiKey, apiSecret, folder string, logger *zap.Logger) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, apperr.Auth("cloudinary", err)
	}
	cld.Config.URL.Secure = true
	logger.Info("Cloudinary configured", zap.String("cloud", cloudName), zap.String("folder", folder))
	return &Cloudinary{cld: cld, folder: folder, logger: logger}, nil
}

// ResourceType returns the Cloudinary resource type for mimeType.
func ResourceType(mimeType string) string {
	if strings.HasPrefix(strings.ToLower(mimeType), "video/") {
		return "video"
	}
	return "image"
}

// Upload implements Uploader.
func (c *Cloudinary) Upload(ctx context.Context, obj Object) (Uploaded, error) {
	folder := c.folder
	if obj.Folder != "" {
		folder = obj.Folder
	}

	resp, err := c.cld.Upload.Upload(ctx, bytes.NewReader(obj.Data), uploader.UploadParams{
		Folder:       folder,
		ResourceType: ResourceType(obj.MimeType),
	})
	if err != nil {
		return Uploaded{}, apperr.Transport("cloudinary", "upload", err)
	}
	if resp.Error.Message != "" {
		return Uploaded{}, apperr.Transport("cloudinary", "upload", errors.New(resp.Error.Message))
	}
	if resp.SecureURL == "" {
		return Uploaded{}, apperr.Transport("cloudinary", "upload", fmt.Errorf("no public url returned for %s", obj.Name))
	}

	c.logger.Info("Upload to Cloudinary complete", zap.String("url", resp.SecureURL), zap.Int("bytes", len(obj.Data)))
	return Uploaded{ID: resp.PublicID, URL: resp.SecureURL}, nil
}
