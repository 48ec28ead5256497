package root

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sololevel/internal/api"
	"sololevel/internal/sweep"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (and the daily stale-day sweep)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			if a.cfg.Sweep.IsEnabled() {
				sw, err := sweep.New(a.svc, a.cfg.Day.BoundaryHour, a.cfg.Location(), a.logger)
				if err != nil {
					return err
				}
				sw.Start(ctx)
				defer func() { _ = sw.Stop() }()
				if next, err := sw.NextRun(); err == nil {
					a.logger.Printf("next stale-day sweep at %s", next.Format("2006-01-02 15:04 MST"))
				}
			}

			srv := api.New(a.svc, api.Options{
				DefaultPlayer:  a.player,
				AllowedOrigins: a.cfg.Server.AllowedOrigins,
				Logger:         a.logger,
				AccessLog:      cmd.ErrOrStderr(),
			})

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Listen(addr) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				a.logger.Printf("shutting down")
				if err := srv.Shutdown(); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :5050)")

	return cmd
}
