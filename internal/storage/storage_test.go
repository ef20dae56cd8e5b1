package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestIsVisual(t *testing.T) {
	assert.True(t, IsVisual("image/jpeg"))
	assert.True(t, IsVisual("video/mp4"))
	assert.True(t, IsVisual(" Image/PNG"))
	assert.False(t, IsVisual("audio/ogg"))
	assert.False(t, IsVisual("application/pdf"))
	assert.False(t, IsVisual(""))
}

func TestResourceType(t *testing.T) {
	assert.Equal(t, "video", ResourceType("video/mp4"))
	assert.Equal(t, "image", ResourceType("image/webp"))
}

func TestViewLink(t *testing.T) {
	assert.Equal(t, "https://drive.google.com/file/d/abc123/view?usp=sharing", ViewLink("abc123"))
}

func TestCloudinaryUpload(t *testing.T) {
	cloud := os.Getenv("CLOUDINARY_CLOUD_NAME")
	key := os.Getenv("CLOUDINARY_API_KEY")
	secret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloud == "" || key == "" || secret == "" {
		t.Skip("Skipping test: CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET not set")
	}
	// 1x1 transparent GIF
	gif := []byte{
		0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00, 0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
	}

	c, err := NewCloudinary(cloud, key, secret, "bridge_tests", zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	up, err := c.Upload(ctx, Object{Name: "pixel.gif", MimeType: "image/gif", Data: gif})
	require.NoError(t, err)
	assert.Contains(t, up.URL, "https://")
	t.Logf("Uploaded to %s", up.URL)
}
