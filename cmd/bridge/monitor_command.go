package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/alias"
	"whatsapp-media-bridge/internal/apperr"
	"whatsapp-media-bridge/internal/config"
	"whatsapp-media-bridge/internal/dispatch"
	"whatsapp-media-bridge/internal/record"
	"whatsapp-media-bridge/internal/resolve"
	"whatsapp-media-bridge/internal/sheets"
	"whatsapp-media-bridge/internal/storage"
	"whatsapp-media-bridge/internal/trello"
	"whatsapp-media-bridge/internal/whatsapp"
)

const (
	targetTrello = "trello"
	targetSheets = "sheets"
)

func newMonitorCommand(ctx *commandContext) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Record captioned group media on Trello cards or spreadsheet tabs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup()
			if err != nil {
				return err
			}
			return runMonitor(cmd.Context(), ctx, cfg, logger, target, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&target, "target", targetTrello, "Where media is recorded (trello|sheets)")
	return cmd
}

// sink is the destination side of the monitor: how labels resolve, where
// media is uploaded and how uploads are recorded.
type sink struct {
	resolver    *resolve.Resolver
	writer      record.Writer
	uploader    storage.Uploader
	destination dispatch.Destination
}

func runMonitor(ctx context.Context, app *commandContext, cfg *config.Config, logger *zap.Logger, target string, out io.Writer) error {
	if err := cfg.RequireGroup(true); err != nil {
		return err
	}

	var (
		s   sink
		err error
	)
	switch target {
	case targetTrello:
		s, err = trelloSink(cfg, logger)
	case targetSheets:
		s, err = sheetsSink(ctx, app, cfg, logger)
	default:
		return apperr.Validation("target", fmt.Sprintf("%q is not one of trello, sheets", target))
	}
	if err != nil {
		return err
	}

	aliases := alias.NewManager(cfg.AliasFile, logger.Named("alias"))
	recorderConfig := dispatch.RecorderConfig{
		SourceID:    whatsapp.NormalizeTarget(cfg.TargetGroupID),
		Operator:    whatsapp.NormalizeTarget(cfg.OperatorJID),
		Destination: s.destination,
		Location:    cfg.Location,
	}

	logger.Info("Starting WhatsApp media monitor...",
		zap.String("target", target),
		zap.String("group", recorderConfig.SourceID),
		zap.Stringer("policy", s.resolver.Policy()),
	)

	return runSession(ctx, cfg, logger, out, func(n dispatch.Notifier) dispatch.Handler {
		return dispatch.NewRecorder(recorderConfig, s.resolver, s.writer, s.uploader, n, aliases, logger.Named("recorder"))
	})
}

func trelloSink(cfg *config.Config, logger *zap.Logger) (sink, error) {
	if err := cfg.RequireTrello(); err != nil {
		return sink{}, err
	}
	if err := cfg.RequireCloudinary(); err != nil {
		return sink{}, err
	}

	board := trello.NewBoard(cfg.Trello.APIKey, cfg.Trello.AuthToken, cfg.Trello.BoardID, cfg.Trello.ListID,
		cfg.Location, logger.Named("trello"))
	uploader, err := storage.NewCloudinary(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret,
		cfg.Cloudinary.Folder, logger.Named("cloudinary"))
	if err != nil {
		return sink{}, err
	}

	return sink{
		resolver:    resolve.NewResolver(board, resolve.Substring, logger.Named("resolve")),
		writer:      record.NewAttachmentWriter(board, logger.Named("record")),
		uploader:    uploader,
		destination: dispatch.TrelloCards,
	}, nil
}

func sheetsSink(ctx context.Context, app *commandContext, cfg *config.Config, logger *zap.Logger) (sink, error) {
	if err := cfg.RequireGoogle(true, true); err != nil {
		return sink{}, err
	}
	ts, err := app.googleTokenSource(ctx, cfg, storage.DriveScope, sheets.Scope)
	if err != nil {
		return sink{}, err
	}

	drive, err := storage.NewDrive(ctx, ts, cfg.Google.DriveFolderID, logger.Named("drive"))
	if err != nil {
		return sink{}, err
	}
	sheet, err := sheets.NewSpreadsheet(ctx, ts, cfg.Google.SpreadsheetID, logger.Named("sheets"))
	if err != nil {
		return sink{}, err
	}

	return sink{
		resolver:    resolve.NewResolver(sheet, resolve.Exact, logger.Named("resolve")),
		writer:      record.NewAppendWriter(sheet, cfg.Location, logger.Named("record")),
		uploader:    drive,
		destination: dispatch.SheetTabs,
	}, nil
}
