package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"whatsapp-media-bridge/internal/alias"
	"whatsapp-media-bridge/internal/backfill"
	"whatsapp-media-bridge/internal/record"
	"whatsapp-media-bridge/internal/resolve"
	"whatsapp-media-bridge/internal/sheets"
	"whatsapp-media-bridge/internal/storage"
)

func newSheetsSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets-sync",
		Short: "Record the files of the Drive folder in per-label spreadsheet tabs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup()
			if err != nil {
				return err
			}
			if err := cfg.RequireGoogle(true, true); err != nil {
				return err
			}

			ts, err := ctx.googleTokenSource(cmd.Context(), cfg, storage.DriveScope, sheets.Scope)
			if err != nil {
				return err
			}
			drive, err := storage.NewDrive(cmd.Context(), ts, cfg.Google.DriveFolderID, logger.Named("drive"))
			if err != nil {
				return err
			}
			sheet, err := sheets.NewSpreadsheet(cmd.Context(), ts, cfg.Google.SpreadsheetID, logger.Named("sheets"))
			if err != nil {
				return err
			}

			syncer := backfill.NewSyncer(
				drive,
				resolve.NewResolver(sheet, resolve.Exact, logger.Named("resolve")),
				record.NewAppendWriter(sheet, cfg.Location, logger.Named("record")),
				alias.NewManager(cfg.AliasFile, logger.Named("alias")),
				logger.Named("backfill"),
			)
			summary, err := syncer.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Arquivos encontrados: %d\n", summary.Files)
			fmt.Fprintf(out, "Registros inseridos: %d\n", summary.Inserted)
			fmt.Fprintf(out, "Arquivos ignorados: %d\n", summary.Skipped)
			if len(summary.Created) > 0 {
				fmt.Fprintf(out, "Abas criadas: %s\n", strings.Join(summary.Created, ", "))
			}
			return nil
		},
	}
}
