package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/focal/internal/config"
	"github.com/sadopc/focal/internal/daemon"
	"github.com/sadopc/focal/internal/notify"
	"github.com/sadopc/focal/internal/store"
)

func addDaemon(topLevel *cobra.Command) {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the reminder daemon",
		Long:  "Polls the database for due task reminders and posts a desktop notification for each. Meant to run alongside the TUI, from a service manager or a shell.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(cfg config.Config, s *store.Store) error {
				if interval == 0 {
					interval = cfg.DaemonInterval
				}

				ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				d := daemon.New(s, notify.New(cfg.Notifications), interval)
				if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (default from config)")

	topLevel.AddCommand(cmd)
}
