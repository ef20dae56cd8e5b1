package whatsapp

import (
	"context"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/apperr"
	"whatsapp-media-bridge/internal/dispatch"
	"whatsapp-media-bridge/internal/status"
)

// EventHandler returns a whatsmeow event handler that tracks the connection
// state and runs handler for each message received from others.
func EventHandler(ctx context.Context, cli *whatsmeow.Client, handler dispatch.Handler, tracker *status.Tracker, logger *zap.Logger) func(interface{}) {
	return func(evt interface{}) {
		switch v := evt.(type) {
		case *events.Connected:
			logger.Info("WhatsApp client connected!")
			tracker.Set(status.StateReady)
		case *events.Disconnected:
			logger.Info("WhatsApp client disconnected!")
			tracker.Set(status.StateDisconnected)
		case *events.LoggedOut:
			logger.Warn("WhatsApp session logged out", zap.Stringer("reason", v.Reason))
			tracker.Set(status.StateAuthFailure)
		case *events.ConnectFailure:
			logger.Error("WhatsApp connection failed", zap.Stringer("reason", v.Reason))
			tracker.Set(status.StateAuthFailure)
		case *events.Message:
			if v.Info.IsFromMe {
				return
			}
			in := FromMessage(cli, v)
			// Run in a goroutine to avoid blocking the event loop
			go func() {
				if err := handler.Handle(ctx, in); err != nil {
					if apperr.IsValidation(err) {
						logger.Debug("Message dropped", zap.String("id", in.ID), zap.Error(err))
						return
					}
					logger.Error("Failed to handle message", zap.String("id", in.ID), zap.Error(err))
				}
			}()
		}
	}
}
