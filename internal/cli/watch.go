package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/SscSPs/landed_pricing_app/internal/events"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// WatchCmd returns the watch command.
func WatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream authorization events from Redis",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			if e.cfg.RedisURL == "" {
				return fmt.Errorf("REDIS_URL is not set")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client, err := events.NewRedisClient(ctx, e.cfg.RedisURL)
			if err != nil {
				return err
			}
			defer client.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", e.cfg.RedisChannel)
			for evt := range events.NewRedisPublisher(client, e.cfg.RedisChannel, nil, e.logger).Subscribe(ctx) {
				fmt.Fprintln(cmd.OutOrStdout(), formatEvent(evt))
			}
			return nil
		},
	}
}

func formatEvent(evt events.Event) string {
	c := color.New(color.FgCyan)
	switch evt.Type {
	case events.TypeAuthorizationApproved:
		c = color.New(color.FgGreen)
	case events.TypeAuthorizationRejected:
		c = color.New(color.FgRed)
	}
	return fmt.Sprintf("%s %s %s %s/%s by %s",
		evt.OccurredAt.Format("2006-01-02 15:04:05"), c.Sprint(evt.Type), evt.RequestID, evt.SKU, evt.TransportMode, evt.Actor)
}
