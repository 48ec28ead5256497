package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sololevel/internal/engine"
	"sololevel/internal/ui"
)

func newAddCmd() *cobra.Command {
	var typ string
	var minutes string
	var note string
	var saveTemplate bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quick quest to today's list",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
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

			res, err := a.svc.QuickAdd(ctx, a.player, engine.QuickQuestInput{
				Title:          strings.Join(args, " "),
				Type:           typ,
				MinutesRaw:     minutes,
				Note:           note,
				SaveAsTemplate: saveTemplate,
			})
			if err != nil {
				return err
			}
			printCreated(cmd, res)
			if res.Template != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render(ui.IconScroll+" Saved template"), ui.ShortID(res.Template.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "Quest type (physical|intellectual|spiritual)")
	cmd.Flags().StringVarP(&minutes, "minutes", "m", "", "Duration in minutes (default 25, capped by your stat)")
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	cmd.Flags().BoolVar(&saveTemplate, "save-template", false, "Also save this quest as a template")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newFromCmd() *cobra.Command {
	var minutes string

	cmd := &cobra.Command{
		Use:   "from <template_id>",
		Short: "Add a quest from a saved template",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("template_id is required")
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

			id, err := a.resolveTemplateID(ctx, args[0])
			if err != nil {
				return err
			}
			res, err := a.svc.AddFromTemplate(ctx, a.player, id, minutes)
			if err != nil {
				return err
			}
			printCreated(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&minutes, "minutes", "m", "", "Override the template's minutes")

	return cmd
}

func printCreated(cmd *cobra.Command, res *engine.CreateQuestResult) {
	q := res.Quest
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %s\n",
		ui.Good.Render(ui.IconPlus+" Added"),
		ui.Muted.Render(ui.ShortID(q.ID)),
		ui.TypeIcon(q.Type)+" "+q.Title,
		ui.Muted.Render(fmt.Sprintf("(%dm of max %dm)", q.Minutes, res.MaxMinutes)),
		ui.Reward(q.XPReward, q.GoldReward),
	)
}
