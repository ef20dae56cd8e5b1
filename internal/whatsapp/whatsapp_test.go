package whatsapp

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/protobuf/proto"

	"whatsapp-media-bridge/internal/dispatch"
	"whatsapp-media-bridge/internal/status"
)

func TestNormalizeTarget(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5519992897178@c.us", "5519992897178@s.whatsapp.net"},
		{"5519992897178@s.whatsapp.net", "5519992897178@s.whatsapp.net"},
		{"+5519992897178", "5519992897178@s.whatsapp.net"},
		{" 120363421997659113@g.us ", "120363421997659113@g.us"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTarget(tt.in), tt.in)
	}
}

func TestParseTarget(t *testing.T) {
	jid, err := ParseTarget("5519992897178@c.us")
	require.NoError(t, err)
	assert.Equal(t, "5519992897178", jid.User)
	assert.Equal(t, types.DefaultUserServer, jid.Server)

	jid, err = ParseTarget("120363421997659113@g.us")
	require.NoError(t, err)
	assert.Equal(t, types.GroupServer, jid.Server)

	_, err = ParseTarget("  ")
	assert.Error(t, err)
}

func TestLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Logger(zap.New(core), "Client").Sub("Socket")

	l.Infof("connected to %s", "server")
	l.Warnf("retry %d", 2)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "connected to server", entries[0].Message)
	assert.Equal(t, "Client.Socket", entries[0].LoggerName)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestPrintQRCode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintQRCode(&buf, "2@abcdef,ghijkl"))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], "╔"))
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "╚"))
	assert.Contains(t, buf.String(), "██")
}

func groupMessage(msg *waE2E.Message) *events.Message {
	return &events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{
				Chat:    types.NewJID("120363421997659113", types.GroupServer),
				Sender:  types.NewJID("5511999990000", types.DefaultUserServer),
				IsGroup: true,
			},
			ID:        "3EB0ABC",
			Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		Message: msg,
	}
}

func TestFromMessageImage(t *testing.T) {
	evt := groupMessage(&waE2E.Message{
		ImageMessage: &waE2E.ImageMessage{
			Caption:  proto.String("José Silva"),
			Mimetype: proto.String("image/jpeg"),
		},
	})

	in := FromMessage(nil, evt)
	assert.Equal(t, "3EB0ABC", in.ID)
	assert.Equal(t, "120363421997659113@g.us", in.Chat)
	assert.Equal(t, "5511999990000", in.Sender)
	assert.Equal(t, "José Silva", in.Caption)
	assert.Equal(t, "image/jpeg", in.MimeType)
	assert.False(t, in.Quoted)
	assert.NotNil(t, in.Media)
	assert.Equal(t, evt.Info.Timestamp, in.Timestamp)
}

func TestFromMessageDocument(t *testing.T) {
	in := FromMessage(nil, groupMessage(&waE2E.Message{
		DocumentMessage: &waE2E.DocumentMessage{
			Caption:  proto.String("Maya"),
			Mimetype: proto.String("application/pdf"),
			FileName: proto.String("laudo.pdf"),
		},
	}))
	assert.Equal(t, "application/pdf", in.MimeType)
	assert.Equal(t, "laudo.pdf", in.FileName)
	assert.NotNil(t, in.Media)
}

func TestFromMessageQuotedVideo(t *testing.T) {
	in := FromMessage(nil, groupMessage(&waE2E.Message{
		VideoMessage: &waE2E.VideoMessage{
			Caption:  proto.String("Ana"),
			Mimetype: proto.String("video/mp4"),
			ContextInfo: &waE2E.ContextInfo{
				QuotedMessage: &waE2E.Message{Conversation: proto.String("original")},
			},
		},
	}))
	assert.True(t, in.Quoted)
	assert.Equal(t, "video/mp4", in.MimeType)
}

func TestFromMessageText(t *testing.T) {
	in := FromMessage(nil, groupMessage(&waE2E.Message{Conversation: proto.String("/aliases")}))
	assert.Equal(t, "/aliases", in.Text)
	assert.Nil(t, in.Media)

	in = FromMessage(nil, groupMessage(&waE2E.Message{
		ExtendedTextMessage: &waE2E.ExtendedTextMessage{Text: proto.String("/alias maya = Maya Nasrallah")},
	}))
	assert.Equal(t, "/alias maya = Maya Nasrallah", in.Text)
	assert.Nil(t, in.Media)
}

type recordingHandler struct {
	mu   sync.Mutex
	seen []dispatch.Inbound
	done chan struct{}
}

func (h *recordingHandler) Handle(_ context.Context, in dispatch.Inbound) error {
	h.mu.Lock()
	h.seen = append(h.seen, in)
	h.mu.Unlock()
	h.done <- struct{}{}
	return nil
}

func TestEventHandler(t *testing.T) {
	logger := zaptest.NewLogger(t)
	tracker := status.NewTracker(logger)
	h := &recordingHandler{done: make(chan struct{}, 1)}
	handle := EventHandler(context.Background(), nil, h, tracker, logger)

	handle(&events.Connected{})
	assert.Equal(t, status.StateReady, tracker.Value())

	handle(&events.Disconnected{})
	assert.Equal(t, status.StateDisconnected, tracker.Value())

	handle(&events.LoggedOut{})
	assert.Equal(t, status.StateAuthFailure, tracker.Value())

	own := groupMessage(&waE2E.Message{Conversation: proto.String("mine")})
	own.Info.IsFromMe = true
	handle(own)

	handle(groupMessage(&waE2E.Message{Conversation: proto.String("hello")}))
	select {
	case <-h.done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not called")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	require.Len(t, h.seen, 1)
	assert.Equal(t, "hello", h.seen[0].Text)
}
