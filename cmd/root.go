package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tabsleep",
		Short:         "Suspend inactive browser tabs to save memory",
		Long:          "tabsleep runs a background daemon that discards browser tabs left inactive for too long, and a terminal panel to suspend, resume and configure it.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newPanelCmd(),
		newSuspendCmd(),
		newResumeCmd(),
	)

	return rootCmd
}
