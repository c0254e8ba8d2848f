package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ixaliom/ixwha/pkg/services"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the periodic chapter check in the foreground",
	Long:  "Check for new chapters once per interval until interrupted, announcing updates through the configured webhook",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, repo, store := open()
		defer repo.Close()

		checker := newChecker(cfg, repo, store)
		scheduler := services.NewScheduler(repo, checker, newNotifier(cfg, repo), newManifestClient(cfg), Version, cfg.CheckInterval())

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("👀 Watching for new chapters every %s (ctrl+c to stop)\n", cfg.CheckInterval())

		if err := scheduler.Watch(ctx); err != nil && err != context.Canceled {
			cobra.CheckErr(err)
		}

		fmt.Println("\n👋 Stopped watching")
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
