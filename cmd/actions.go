package cmd

import (
	"fmt"
	"tabsleep/internal/client"
	"time"

	"github.com/spf13/cobra"
)

var newClient = func(addr string) client.DaemonClientInterface {
	return client.NewDaemonClient(addr, 30*time.Second)
}

func newSuspendCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "suspend",
		Short: "Suspend every inactive, unpinned, non-whitelisted tab now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := newClient(addr).SuspendNow(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tab := range result.Stats.SuspendedTabs {
				fmt.Fprintf(out, "  %s\n", tab.Domain)
			}
			fmt.Fprintf(out, "Suspended Tabs: %d\n", result.Suspended)
			if result.Failed > 0 {
				fmt.Fprintf(out, "Failed: %d\n", result.Failed)
			}
			_, err = fmt.Fprintf(out, "Memory Saved: %.2f MB\n", result.Stats.MemorySaved)
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", client.DefaultAddr, "daemon address")
	return cmd
}

func newResumeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Reload every discarded tab",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := newClient(addr).Resume(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Resumed: %d, failed: %d\n", result.Resumed, result.Failed)
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", client.DefaultAddr, "daemon address")
	return cmd
}
