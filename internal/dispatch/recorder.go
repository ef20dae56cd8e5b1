package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/alias"
	"whatsapp-media-bridge/internal/apperr"
	"whatsapp-media-bridge/internal/record"
	"whatsapp-media-bridge/internal/resolve"
	"whatsapp-media-bridge/internal/storage"
)

// MinLabelLength is the shortest caption accepted as a label.
const MinLabelLength = 3

// ShortLabelWarning is sent to the operator when a caption is too short.
const ShortLabelWarning = "⚠️ ALERTA: Mídia ignorada. Por favor, envie a mídia com o nome completo do aluno na legenda."

// Destination selects the wording of operator notifications.
type Destination int

const (
	// TrelloCards records media as attachments on Trello cards.
	TrelloCards Destination = iota
	// SheetTabs records media as rows in spreadsheet tabs.
	SheetTabs
)

func (d Destination) successMessage(label string, isNew bool) string {
	switch d {
	case SheetTabs:
		if isNew {
			return fmt.Sprintf("🆕 Aba para *\"%s\"* foi criada e a mídia foi registrada com sucesso.", label)
		}
		return fmt.Sprintf("✅ Mídia registrada com sucesso na aba de *\"%s\"* da planilha.", label)
	default:
		if isNew {
			return fmt.Sprintf("🆕 Card para *\"%s\"* foi criado e a mídia foi anexada com sucesso.", label)
		}
		return fmt.Sprintf("✅ Mídia anexada com sucesso ao Card de *\"%s\"* no Trello.", label)
	}
}

func (d Destination) urlLabel() string {
	if d == SheetTabs {
		return "URL do arquivo no Drive"
	}
	return "URL do Anexo no Cloudinary"
}

// RecorderConfig holds the routing settings of a Recorder.
type RecorderConfig struct {
	// SourceID is the group JID whose media is processed.
	SourceID string
	// Operator is the JID that receives notifications and may send commands.
	Operator    string
	Destination Destination
	Location    *time.Location
}

// Recorder resolves captioned media to records and writes uploads to them.
type Recorder struct {
	cfg      RecorderConfig
	resolver *resolve.Resolver
	writer   record.Writer
	uploader storage.Uploader
	notifier Notifier
	aliases  *alias.Manager
	locks    *resolve.KeyedMutex
	logger   *zap.Logger
	now      func() time.Time
}

// NewRecorder creates a Recorder. aliases may be nil.
func NewRecorder(cfg RecorderConfig, resolver *resolve.Resolver, writer record.Writer, uploader storage.Uploader,
	notifier Notifier, aliases *alias.Manager, logger *zap.Logger) *Recorder {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Recorder{
		cfg:      cfg,
		resolver: resolver,
		writer:   writer,
		uploader: uploader,
		notifier: notifier,
		aliases:  aliases,
		locks:    resolve.NewKeyedMutex(),
		logger:   logger,
		now:      time.Now,
	}
}

// AttachmentTitle names the attachment written for label at t.
func AttachmentTitle(label string, t time.Time) string {
	return fmt.Sprintf("Anexo de Mídia para %s (%s)", label, t.Format("02/01/2006"))
}

// Handle implements Handler. Messages outside the monitored group, without
// media, replying to another message or without a caption are ignored. Short
// captions and non-visual media are dropped with a ValidationError.
func (r *Recorder) Handle(ctx context.Context, in Inbound) error {
	if r.handleCommand(ctx, in) {
		return nil
	}

	if in.Chat != r.cfg.SourceID {
		r.logger.Debug("Ignoring message outside monitored group", zap.String("chat", in.Chat))
		return nil
	}
	if in.Media == nil {
		return nil
	}
	if in.Quoted {
		r.logger.Debug("Ignoring media sent as a reply", zap.String("id", in.ID))
		return nil
	}

	label := strings.TrimSpace(in.Caption)
	if label == "" {
		r.logger.Debug("Ignoring media without caption", zap.String("id", in.ID))
		return nil
	}
	if utf8.RuneCountInString(label) < MinLabelLength {
		r.logger.Warn("Caption too short, media ignored", zap.String("caption", label), zap.String("from", in.Sender))
		r.notify(ctx, r.cfg.Operator, ShortLabelWarning)
		return apperr.Validation("label", fmt.Sprintf("%q is shorter than %d characters", label, MinLabelLength))
	}
	if !storage.IsVisual(in.MimeType) {
		r.logger.Info("Media ignored, not an image or video", zap.String("mime_type", in.MimeType))
		return apperr.Validation("mime type", fmt.Sprintf("%q is not an image or video", in.MimeType))
	}

	eventID := uuid.New().String()
	logger := r.logger.With(zap.String("event", eventID), zap.String("label", label))
	logger.Info("Processing media", zap.String("mime_type", in.MimeType), zap.String("from", in.Sender))

	if err := r.process(ctx, in, label, logger); err != nil {
		logger.Error("Failed to record media", zap.Error(err))
		r.notify(ctx, r.cfg.Operator, fmt.Sprintf(
			"❌ ALERTA DE ERRO: Ocorreu um erro ao processar e anexar a mídia do aluno *\"%s\"*: %v", label, err))
		return err
	}
	return nil
}

func (r *Recorder) process(ctx context.Context, in Inbound, label string, logger *zap.Logger) error {
	title := label
	if r.aliases != nil {
		title = r.aliases.Apply(label)
		if title != label {
			logger.Info("Label aliased", zap.String("title", title))
		}
	}

	unlock := r.locks.LockLabel(title)
	defer unlock()

	data, err := in.Media.Download(ctx)
	if err != nil {
		return apperr.Transport("whatsapp", "download media", err)
	}

	res, err := r.resolver.Resolve(ctx, title)
	if err != nil {
		return err
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = r.now()
	}
	ts = ts.In(r.cfg.Location)

	base := in.FileName
	if base == "" {
		base = label
	}
	name := MediaFileName(base, in.MimeType, ts)
	up, err := r.uploader.Upload(ctx, storage.Object{Name: name, MimeType: in.MimeType, Data: data})
	if err != nil {
		return err
	}

	md := record.Metadata{
		Title:     AttachmentTitle(label, ts),
		FileName:  name,
		URL:       up.URL,
		Timestamp: ts,
	}
	if err := r.writer.Write(ctx, res, md); err != nil {
		return err
	}

	logger.Info("Media recorded", zap.String("record", res.Title), zap.Bool("new", res.IsNew), zap.String("url", up.URL))
	msg := fmt.Sprintf("%s\n\n🔗 *%s:* %s", r.cfg.Destination.successMessage(label, res.IsNew), r.cfg.Destination.urlLabel(), up.URL)
	r.notify(ctx, r.cfg.Operator, msg)
	return nil
}

// handleCommand answers alias commands sent from the operator's chat.
func (r *Recorder) handleCommand(ctx context.Context, in Inbound) bool {
	if r.aliases == nil || in.Chat != r.cfg.Operator || !strings.HasPrefix(strings.TrimSpace(in.Text), "/") {
		return false
	}
	reply, ok := r.aliases.HandleCommand(in.Text)
	if !ok {
		return false
	}
	r.logger.Info("Executing operator command", zap.String("command", in.Text))
	r.notify(ctx, in.Chat, reply)
	return true
}

func (r *Recorder) notify(ctx context.Context, to, text string) {
	if to == "" {
		r.logger.Warn("No operator configured, notification dropped", zap.String("text", text))
		return
	}
	if err := r.notifier.Notify(ctx, to, text); err != nil {
		r.logger.Error("Failed to send notification", zap.Error(err), zap.String("to", to))
	}
}
