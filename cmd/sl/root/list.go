package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sololevel/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List today's quests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			day, err := a.svc.Day(ctx, a.player)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if day.ActiveDay == nil {
				fmt.Fprintf(out, "%s %s\n", ui.Warn.Render(ui.IconWarn+" Day not started:"), day.TodayKey)
				fmt.Fprintln(out, ui.Muted.Render("Run `sl start` to begin."))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Quests for "+day.ActiveDay.DayKey))
			reset := a.svc.Engine().Days.NextBoundary(time.Now())
			fmt.Fprintln(out, ui.Muted.Render("List resets at "+reset.Format("2006-01-02 15:04 MST")))
			if len(day.Quests) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
				return nil
			}
			for _, q := range day.Quests {
				line := fmt.Sprintf("- %s %s %s %s %s",
					ui.Muted.Render(ui.ShortID(q.ID)),
					ui.QuestStatus(q.Completed),
					ui.TypeIcon(q.Type)+" "+q.Title,
					ui.Muted.Render(fmt.Sprintf("%dm", q.Minutes)),
					ui.Reward(q.XPReward, q.GoldReward),
				)
				fmt.Fprintln(out, line)
				if q.Note != "" {
					fmt.Fprintln(out, "    "+ui.Muted.Render(q.Note))
				}
			}
			return nil
		},
	}

	return cmd
}
