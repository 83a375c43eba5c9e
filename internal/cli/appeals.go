package cli

import (
	"errors"

	"github.com/NabievDev/NewPeople-sub000/pkg/apiclient"

	"github.com/spf13/cobra"
)

func newAppealsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appeals",
		Short: "Triage citizen appeals",
	}
	cmd.AddCommand(newAppealsListCmd(app))
	cmd.AddCommand(newAppealsShowCmd(app))
	cmd.AddCommand(newAppealsSetStatusCmd(app))
	cmd.AddCommand(newAppealsTagCmd(app, true))
	cmd.AddCommand(newAppealsTagCmd(app, false))
	cmd.AddCommand(newAppealsCommentCmd(app))
	cmd.AddCommand(newAppealsSubmitCmd(app))
	return cmd
}

func newAppealsListCmd(app *App) *cobra.Command {
	var q apiclient.AppealQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appeals, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appeals, err := app.client.Appeals(ctxOf(cmd), q)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, appeals)
		},
	}

	cmd.Flags().StringVar(&q.Status, "status", "", "Filter by status key")
	cmd.Flags().Int64Var(&q.InternalTagID, "tag", 0, "Filter by internal tag id")
	cmd.Flags().IntVar(&q.Skip, "skip", 0, "Offset")
	cmd.Flags().IntVar(&q.Limit, "limit", 50, "Page size")
	return cmd
}

func newAppealsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one appeal with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			appeal, err := app.client.Appeal(ctxOf(cmd), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			comments, err := app.client.Comments(ctxOf(cmd), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"appeal": appeal, "comments": comments})
		},
	}
}

func newAppealsSetStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <status-key>",
		Short: "Move an appeal to any status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			status := args[1]
			appeal, err := app.client.UpdateAppeal(ctxOf(cmd), id, apiclient.AppealPatch{Status: &status})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, appeal)
		},
	}
}

// newAppealsTagCmd 生成 tag / untag 两个子命令。
func newAppealsTagCmd(app *App, attach bool) *cobra.Command {
	var pool string
	use, short := "tag <appeal-id> <tag-id>", "Attach a tag to an appeal"
	if !attach {
		use, short = "untag <appeal-id> <tag-id>", "Detach a tag from an appeal"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appealID, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			tagID, err := parseID(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			call := app.client.AttachTag
			if !attach {
				call = app.client.DetachTag
			}
			appeal, err := call(ctxOf(cmd), appealID, tagID, apiclient.Pool(pool))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, appeal)
		},
	}

	cmd.Flags().StringVar(&pool, "pool", string(apiclient.PoolInternal), "Tag pool (public|internal)")
	return cmd
}

func newAppealsCommentCmd(app *App) *cobra.Command {
	var internal bool

	cmd := &cobra.Command{
		Use:   "comment <id> <text>",
		Short: "Add a moderator comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			comment, err := app.client.AddComment(ctxOf(cmd), id, args[1], internal)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, comment)
		},
	}

	cmd.Flags().BoolVar(&internal, "internal", false, "Visible to staff only")
	return cmd
}

// newAppealsSubmitCmd 以公开表单的方式提交一条诉求，不需要登录。
func newAppealsSubmitCmd(app *App) *cobra.Command {
	var (
		anonymous          bool
		name, email, phone string
		category           int64
	)

	cmd := &cobra.Command{
		Use:   "submit <text>",
		Short: "Submit an appeal through the public endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := apiclient.AppealInput{IsAnonymous: anonymous, Text: args[0]}
			if !anonymous {
				if email == "" {
					return writeErr(cmd, errors.New("--email is required unless --anonymous is set"))
				}
				in.Email = &email
				if name != "" {
					in.AuthorName = &name
				}
				if phone != "" {
					in.Phone = &phone
				}
			}
			if category > 0 {
				in.CategoryID = &category
			}
			appeal, err := app.client.SubmitAppeal(ctxOf(cmd), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, appeal)
		},
	}

	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "Submit without contact details")
	cmd.Flags().StringVar(&name, "name", "", "Author name")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().Int64Var(&category, "category", 0, "Category id")
	return cmd
}
