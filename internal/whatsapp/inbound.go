package whatsapp

import (
	"context"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types/events"

	"whatsapp-media-bridge/internal/dispatch"
)

// downloadable fetches one attachment through the client.
type downloadable struct {
	cli *whatsmeow.Client
	msg whatsmeow.DownloadableMessage
}

func (d downloadable) Download(ctx context.Context) ([]byte, error) {
	return d.cli.Download(ctx, d.msg)
}

// FromMessage converts a whatsmeow message event into a dispatch.Inbound.
// Images, videos, documents and audio carry Media; other messages only text.
func FromMessage(cli *whatsmeow.Client, v *events.Message) dispatch.Inbound {
	in := dispatch.Inbound{
		ID:        string(v.Info.ID),
		Chat:      v.Info.Chat.String(),
		Sender:    v.Info.Sender.User,
		Timestamp: v.Info.Timestamp,
	}

	msg := v.Message
	if msg.GetConversation() != "" {
		in.Text = msg.GetConversation()
	} else if msg.GetExtendedTextMessage() != nil {
		in.Text = msg.GetExtendedTextMessage().GetText()
		in.Quoted = quoted(msg.GetExtendedTextMessage().GetContextInfo())
	}

	var media whatsmeow.DownloadableMessage
	if img := msg.GetImageMessage(); img != nil {
		media = img
		in.Caption = img.GetCaption()
		in.MimeType = img.GetMimetype()
		in.Quoted = quoted(img.GetContextInfo())
	} else if vid := msg.GetVideoMessage(); vid != nil {
		media = vid
		in.Caption = vid.GetCaption()
		in.MimeType = vid.GetMimetype()
		in.Quoted = quoted(vid.GetContextInfo())
	} else if doc := msg.GetDocumentMessage(); doc != nil {
		media = doc
		in.Caption = doc.GetCaption()
		in.MimeType = doc.GetMimetype()
		in.FileName = doc.GetFileName()
		in.Quoted = quoted(doc.GetContextInfo())
	} else if aud := msg.GetAudioMessage(); aud != nil {
		media = aud
		in.MimeType = aud.GetMimetype()
		in.Quoted = quoted(aud.GetContextInfo())
	}

	if media != nil {
		in.Media = downloadable{cli: cli, msg: media}
	}
	return in
}

func quoted(ci *waE2E.ContextInfo) bool {
	return ci.GetQuotedMessage() != nil
}
