package dispatch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/apperr"
	"whatsapp-media-bridge/internal/storage"
)

const (
	mirrorReceived = "Recebi sua mídia! Fazendo download e upload para o Google Drive..."
	mirrorFailed   = "Ops! Houve um erro inesperado ao salvar sua mídia no Drive. Tente novamente."
)

// Mirror uploads every media message of the monitored group and replies in
// the group with the link.
type Mirror struct {
	sourceID string
	uploader storage.Uploader
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewMirror creates a Mirror for the group sourceID.
func NewMirror(sourceID string, uploader storage.Uploader, notifier Notifier, logger *zap.Logger) *Mirror {
	return &Mirror{
		sourceID: sourceID,
		uploader: uploader,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle implements Handler.
func (m *Mirror) Handle(ctx context.Context, in Inbound) error {
	if in.Chat != m.sourceID || in.Media == nil {
		return nil
	}

	m.reply(ctx, in.Chat, mirrorReceived)

	if err := m.upload(ctx, in); err != nil {
		m.logger.Error("Failed to mirror media to Drive", zap.Error(err), zap.String("id", in.ID))
		m.reply(ctx, in.Chat, mirrorFailed)
		return err
	}
	return nil
}

func (m *Mirror) upload(ctx context.Context, in Inbound) error {
	data, err := in.Media.Download(ctx)
	if err != nil {
		return apperr.Transport("whatsapp", "download media", err)
	}
	name := MediaFileName(in.FileName, in.MimeType, m.now())
	up, err := m.uploader.Upload(ctx, storage.Object{Name: name, MimeType: in.MimeType, Data: data})
	if err != nil {
		return err
	}
	m.logger.Info("Media mirrored to Drive", zap.String("name", name), zap.String("url", up.URL))
	m.reply(ctx, in.Chat, fmt.Sprintf("🎉 Arquivo *%s* salvo no Drive! \n\n🔗 Link: %s", name, up.URL))
	return nil
}

func (m *Mirror) reply(ctx context.Context, chat, text string) {
	if err := m.notifier.Notify(ctx, chat, text); err != nil {
		m.logger.Error("Failed to send reply message", zap.Error(err), zap.String("to", chat))
	}
}
