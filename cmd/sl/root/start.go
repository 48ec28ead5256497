package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sololevel/internal/ui"
)

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start today's quest list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := a.svc.StartDay(ctx, a.player)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.AlreadyStarted {
				fmt.Fprintf(out, "%s %s\n", ui.Muted.Render(ui.IconInfo+" Day already started:"), res.ActiveDay.DayKey)
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconSun+" Day started:"), res.ActiveDay.DayKey)
			return nil
		},
	}

	return cmd
}
