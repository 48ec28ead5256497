package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sololevel/internal/engine"
	"sololevel/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player stats, caps, and recent rewards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			v, err := a.svc.Snapshot(ctx, a.player)
			if err != nil {
				return err
			}
			p := v.Player
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Player Status"))
			fmt.Fprintln(out, ui.LabelValue("Player", a.player))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d / %d (%d to go)", p.XP, v.XPToNext, v.XPToNext-p.XP)))
			fmt.Fprintln(out, ui.LabelValue("Gold", ui.Gold.Render(fmt.Sprintf("%s %d", ui.IconCoin, p.Gold))))
			day := ui.Muted.Render("not started")
			if v.ActiveDay != nil {
				day = ui.Good.Render(v.ActiveDay.DayKey)
			}
			fmt.Fprintln(out, ui.LabelValue("Today", day))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			for _, attr := range engine.Attributes {
				fmt.Fprintf(out, "- %s %s: %d %s\n", ui.TypeIcon(attr), attr, p.Stats.Get(attr), ui.Muted.Render(fmt.Sprintf("(max %dm quests)", v.MaxMinutes[attr])))
			}
			if p.StatPoints > 0 {
				fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Unspent points:"), ui.Warn.Render(fmt.Sprint(p.StatPoints)))
			}
			fmt.Fprintln(out, "")

			badges, err := a.svc.Achievements(ctx, a.player)
			if err != nil {
				return err
			}
			earned := 0
			for _, b := range badges {
				if b.Earned {
					earned++
				}
			}
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, earned, len(badges))))
			for _, b := range badges {
				if b.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", b.Icon, b.Name, ui.Muted.Render(b.Description))
				}
			}
			fmt.Fprintln(out, "")

			rewards, err := a.svc.RecentRewards(ctx, a.player, recent)
			if err != nil {
				return err
			}
			if len(rewards) == 0 {
				return nil
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconScroll+" Recent rewards"))
			for _, r := range rewards {
				line := fmt.Sprintf("- %s %s %s", ui.Muted.Render(r.DayKey), r.QuestTitle, ui.Reward(r.XP, r.Gold))
				if r.LeveledUp {
					line += " " + ui.BadgeLevelUp
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&recent, "recent", "n", 5, "How many recent rewards to show")

	return cmd
}
