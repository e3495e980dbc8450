package cmd

import (
	"tabsleep/internal/di"
	"tabsleep/internal/structures"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	flags := &structures.CliFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the background daemon",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cleanup, err := di.InitApp(flags)
			if err != nil {
				return err
			}
			defer cleanup()
			return app.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the configuration file")
	cmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "also log to stderr")
	return cmd
}
