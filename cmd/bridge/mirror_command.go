package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/dispatch"
	"whatsapp-media-bridge/internal/storage"
	"whatsapp-media-bridge/internal/whatsapp"
)

func newMirrorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mirror",
		Short: "Upload every media message of the group to Google Drive and reply with the link",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup()
			if err != nil {
				return err
			}
			if err := cfg.RequireGroup(false); err != nil {
				return err
			}
			if err := cfg.RequireGoogle(true, false); err != nil {
				return err
			}

			ts, err := ctx.googleTokenSource(cmd.Context(), cfg, storage.DriveScope)
			if err != nil {
				return err
			}
			drive, err := storage.NewDrive(cmd.Context(), ts, cfg.Google.DriveFolderID, logger.Named("drive"))
			if err != nil {
				return err
			}

			group := whatsapp.NormalizeTarget(cfg.TargetGroupID)
			logger.Info("Starting WhatsApp Drive mirror...", zap.String("group", group))
			return runSession(cmd.Context(), cfg, logger, cmd.OutOrStdout(), func(n dispatch.Notifier) dispatch.Handler {
				return dispatch.NewMirror(group, drive, n, logger.Named("mirror"))
			})
		},
	}
}
