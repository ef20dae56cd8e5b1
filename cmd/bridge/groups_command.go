package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"whatsapp-media-bridge/internal/whatsapp"
)

func newGroupsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the WhatsApp groups of the paired session with their IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup()
			if err != nil {
				return err
			}

			cli, err := whatsapp.OpenClient(cmd.Context(), cfg.SessionDB, logger.Named("whatsapp"))
			if err != nil {
				return err
			}
			defer cli.Disconnect()
			if err := whatsapp.WaitConnected(cmd.Context(), cli, 30*time.Second); err != nil {
				return err
			}

			groups, err := whatsapp.ListGroups(cli)
			if err != nil {
				return err
			}

			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhum grupo encontrado.")
				return nil
			}
			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				rows = append(rows, []string{g.JID, g.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Nome"}, rows))
			return nil
		},
	}
}
