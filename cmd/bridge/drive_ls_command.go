package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"whatsapp-media-bridge/internal/storage"
)

func newDriveListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "drive-ls",
		Short: "List files visible to the Google service account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup()
			if err != nil {
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

			files, err := drive.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhum arquivo encontrado.")
				return nil
			}

			rows := make([][]string, 0, len(files))
			for _, f := range files {
				rows = append(rows, []string{f.ID, f.Name, f.CreatedTime.In(cfg.Location).Format("02/01/2006 15:04:05")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Nome", "Criado em"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of files to list (0 for all)")
	return cmd
}
