package dispatch

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"
)

// Media fetches the bytes of an inbound attachment.
type Media interface {
	Download(ctx context.Context) ([]byte, error)
}

// Inbound is one message as seen by the handlers.
type Inbound struct {
	ID     string
	Chat   string
	Sender string
	// Text is the body of a plain text message.
	Text string
	// Caption is the text sent along with media.
	Caption   string
	MimeType  string
	FileName  string
	Quoted    bool
	Timestamp time.Time
	// Media is nil for messages without an attachment.
	Media Media
}

// Notifier sends a text message to a chat.
type Notifier interface {
	Notify(ctx context.Context, to, text string) error
}

// Handler processes one inbound message.
type Handler interface {
	Handle(ctx context.Context, in Inbound) error
}

func mediaType(mimeType string) string {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	return mt
}

// Extension returns the file extension for mimeType, "dat" when unknown.
func Extension(mimeType string) string {
	_, sub, ok := strings.Cut(mediaType(mimeType), "/")
	if !ok || sub == "" {
		return "dat"
	}
	return sub
}

// MediaFileName names an upload. base falls back to "whatsapp-media-<unix ms>";
// the MIME subtype is appended unless base already ends in an extension of
// mimeType.
func MediaFileName(base, mimeType string, at time.Time) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = fmt.Sprintf("whatsapp-media-%d", at.UnixMilli())
	}
	if hasExtension(base, mimeType) {
		return base
	}
	return base + "." + Extension(mimeType)
}

func hasExtension(name, mimeType string) bool {
	ext := strings.ToLower(path.Ext(name))
	if len(ext) < 2 {
		return false
	}
	if ext[1:] == Extension(mimeType) {
		return true
	}
	known, _ := mime.ExtensionsByType(mediaType(mimeType))
	for _, k := range known {
		if ext == k {
			return true
		}
	}
	return false
}
