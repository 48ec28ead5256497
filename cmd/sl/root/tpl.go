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

func newTplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tpl",
		Short: "Manage quest templates",
	}
	cmd.AddCommand(newTplAddCmd(), newTplListCmd(), newTplArchiveCmd())
	return cmd
}

func newTplAddCmd() *cobra.Command {
	var typ string
	var minutes string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Save a reusable quest template",
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

			t, err := a.svc.CreateTemplate(ctx, a.player, engine.TemplateInput{
				Title:      strings.Join(args, " "),
				Type:       typ,
				MinutesRaw: minutes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconScroll+" Template saved"),
				ui.Muted.Render(ui.ShortID(t.ID)),
				ui.TypeIcon(t.Type)+" "+t.Title,
				ui.Muted.Render(fmt.Sprintf("(%dm)", t.Minutes)),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "Quest type (physical|intellectual|spiritual)")
	cmd.Flags().StringVarP(&minutes, "minutes", "m", "", "Default minutes (default 25)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newTplListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List active templates, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := a.svc.ListTemplates(ctx, a.player)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Templates"))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none)"))
				return nil
			}
			for _, t := range list {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Muted.Render(ui.ShortID(t.ID)), ui.TypeIcon(t.Type)+" "+t.Title, ui.Muted.Render(fmt.Sprintf("%dm", t.Minutes)))
			}
			return nil
		},
	}

	return cmd
}

func newTplArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <template_id>",
		Short: "Archive a template (existing quests are kept)",
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
			t, err := a.svc.ArchiveTemplate(ctx, a.player, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("📦 Archived"), t.Title)
			return nil
		},
	}

	return cmd
}
