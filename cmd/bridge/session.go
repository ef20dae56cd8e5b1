package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/config"
	"whatsapp-media-bridge/internal/dispatch"
	"whatsapp-media-bridge/internal/status"
	"whatsapp-media-bridge/internal/whatsapp"
)

// runSession logs in to WhatsApp, serves the status API and feeds every
// message to the handler built by newHandler until ctx is cancelled.
func runSession(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer,
	newHandler func(dispatch.Notifier) dispatch.Handler) error {
	cli, err := whatsapp.OpenClient(ctx, cfg.SessionDB, logger.Named("whatsapp"))
	if err != nil {
		return err
	}

	tracker := status.NewTracker(logger.Named("status"))
	handler := newHandler(whatsapp.NewMessenger(cli))
	cli.AddEventHandler(whatsapp.EventHandler(ctx, cli, handler, tracker, logger))

	router := status.NewRouter(tracker, cfg.AllowedOrigins, logger.Named("http"))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- status.Serve(ctx, cfg.Addr(), router, logger)
	}()

	if err := whatsapp.Connect(ctx, cli, tracker, out, logger); err != nil {
		return err
	}
	defer func() {
		cli.Disconnect()
		logger.Info("Disconnected from WhatsApp.")
	}()

	select {
	case <-ctx.Done():
		return <-serveErr
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("status server: %w", err)
		}
		return nil
	}
}
