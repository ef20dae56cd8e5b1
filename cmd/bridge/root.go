package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var logFlag bool

	ctx := newCommandContext(&logFlag)

	rootCmd := &cobra.Command{
		Use:           "bridge",
		Short:         "Bridge WhatsApp group media to Trello, Cloudinary and Google Drive/Sheets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&logFlag, "log", false, "Enable logging to logs/debug.log")

	rootCmd.AddCommand(newMonitorCommand(ctx))
	rootCmd.AddCommand(newMirrorCommand(ctx))
	rootCmd.AddCommand(newSheetsSyncCommand(ctx))
	rootCmd.AddCommand(newDriveListCommand(ctx))
	rootCmd.AddCommand(newGroupsCommand(ctx))

	return rootCmd
}
