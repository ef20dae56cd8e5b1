package whatsapp

import (
	"context"
	"fmt"
	"strings"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"google.golang.org/protobuf/proto"

	"whatsapp-media-bridge/internal/apperr"
)

// NormalizeTarget rewrites the legacy "@c.us" suffix to "@s.whatsapp.net" and
// turns a bare phone number into a user JID string.
func NormalizeTarget(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.HasSuffix(s, "@c.us") {
		return strings.TrimSuffix(s, "@c.us") + "@" + types.DefaultUserServer
	}
	if !strings.Contains(s, "@") {
		return strings.TrimPrefix(s, "+") + "@" + types.DefaultUserServer
	}
	return s
}

// ParseTarget parses a chat identifier as accepted by NormalizeTarget.
func ParseTarget(s string) (types.JID, error) {
	normalized := NormalizeTarget(s)
	if normalized == "" {
		return types.JID{}, fmt.Errorf("empty chat id")
	}
	jid, err := types.ParseJID(normalized)
	if err != nil {
		return types.JID{}, fmt.Errorf("invalid chat id %q: %w", s, err)
	}
	return jid, nil
}

// Messenger sends plain text messages through the client.
type Messenger struct {
	cli *whatsmeow.Client
}

// NewMessenger creates a Messenger.
func NewMessenger(cli *whatsmeow.Client) *Messenger {
	return &Messenger{cli: cli}
}

// Notify implements dispatch.Notifier.
func (m *Messenger) Notify(ctx context.Context, to, text string) error {
	jid, err := ParseTarget(to)
	if err != nil {
		return err
	}
	_, err = m.cli.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: proto.String(text),
	})
	if err != nil {
		return apperr.Transport("whatsapp", "send message", err)
	}
	return nil
}
