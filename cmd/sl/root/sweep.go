package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sololevel/internal/ui"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Clear stale active days for every player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := a.svc.SweepStaleDays(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d player(s) reset for %s\n", ui.Good.Render("🧹 Swept"), n, a.svc.Engine().TodayKey())
			return nil
		},
	}

	return cmd
}
