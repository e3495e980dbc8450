package cmd

import (
	"tabsleep/internal/client"
	"tabsleep/internal/panel"

	"github.com/spf13/cobra"
)

func newPanelCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Open the control panel",
		RunE: func(_ *cobra.Command, _ []string) error {
			return panel.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", client.DefaultAddr, "daemon address")
	return cmd
}
