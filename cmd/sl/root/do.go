package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sololevel/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <quest_id>",
		Short: "Complete a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := a.resolveQuestID(ctx, args[0])
			if err != nil {
				return err
			}
			res, err := a.svc.Complete(ctx, a.player, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Completed"), ui.TypeIcon(res.Quest.Type)+" "+res.Quest.Title, ui.Reward(res.Reward.XP, res.Reward.Gold))
			if res.Multipliers.XP != 1 || res.Multipliers.Gold != 1 {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("stat bonus: xp x%.2f, gold x%.2f", res.Multipliers.XP, res.Multipliers.Gold)))
			}
			p := res.Progress
			if p.LeveledUp {
				fmt.Fprintf(out, "%s %s %s\n", ui.IconTrophy, ui.BadgeLevelUp, fmt.Sprintf("%d → %d (+%d stat points)", p.Before.Level, p.After.Level, p.After.StatPoints-p.Before.StatPoints))
			}
			return nil
		},
	}

	return cmd
}

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <quest_id>",
		Short: "Remove a quest from today's list (rewards already earned are kept)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := a.resolveQuestID(ctx, args[0])
			if err != nil {
				return err
			}
			res, err := a.svc.DeleteQuest(ctx, a.player, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("🗑️ Removed"), res.Quest.Title)
			return nil
		},
	}

	return cmd
}
