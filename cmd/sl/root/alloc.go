package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sololevel/internal/engine"
	"sololevel/internal/ui"
)

func newAllocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alloc <stat> [points]",
		Short: "Spend stat points (default 1) on physical, intellectual, or spiritual",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("usage: alloc <stat> [points]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			stat, err := engine.ParseStat(args[0])
			if err != nil {
				return err
			}
			raw := "1"
			if len(args) == 2 {
				raw = args[1]
			}
			points, err := engine.ParsePoints(raw)
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := a.svc.Allocate(ctx, a.player, stat, points)
			if err != nil {
				return err
			}
			p := res.Player
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconBolt+" Allocated"),
				fmt.Sprintf("+%d", res.Points),
				ui.TypeIcon(stat)+" "+string(stat),
				ui.Muted.Render(fmt.Sprintf("(now %d, max %dm quests, %d points left)", p.Stats.Get(stat), engine.MaxMinutesFor(stat, p.Stats), p.StatPoints)),
			)
			return nil
		},
	}

	return cmd
}
