package cli

import (
	"fmt"
	"slices"

	"github.com/NabievDev/NewPeople-sub000/internal/dashboard"
	"github.com/NabievDev/NewPeople-sub000/pkg/apiclient"

	"github.com/spf13/cobra"
)

func newTagsCmd(app *App) *cobra.Command {
	var pool string

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage public and internal tags",
	}
	cmd.PersistentFlags().StringVar(&pool, "pool", string(apiclient.PoolInternal), "Tag pool (public|internal)")

	poolOf := func() (apiclient.Pool, error) {
		p := apiclient.Pool(pool)
		if p != apiclient.PoolPublic && p != apiclient.PoolInternal {
			return "", fmt.Errorf("invalid pool %q, use public or internal", pool)
		}
		return p, nil
	}

	cmd.AddCommand(newTagsListCmd(app, poolOf))
	cmd.AddCommand(newTagsCreateCmd(app, poolOf))
	cmd.AddCommand(newTagsUpdateCmd(app, poolOf))
	cmd.AddCommand(newTagsDeleteCmd(app, poolOf))
	cmd.AddCommand(newTagsMoveCmd(app, poolOf))
	return cmd
}

func loadTags(cmd *cobra.Command, app *App) (*dashboard.TagRegistry, error) {
	reg := app.dashboard(cmd).Tags
	if err := reg.Load(ctxOf(cmd)); err != nil {
		return nil, err
	}
	return reg, nil
}

func newTagsListCmd(app *App, poolOf func() (apiclient.Pool, error)) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags of one pool (or --all)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := poolOf()
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := loadTags(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if all {
				return writeOut(cmd, app, reg.All())
			}
			return writeOut(cmd, app, reg.Tags(pool))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List both pools, public first")
	return cmd
}

func newTagsCreateCmd(app *App, poolOf func() (apiclient.Pool, error)) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := poolOf()
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := loadTags(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tag, err := reg.Create(ctxOf(cmd), pool, args[0], color)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tag)
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Hex color such as #FF0000 (pool default when omitted)")
	return cmd
}

func newTagsUpdateCmd(app *App, poolOf func() (apiclient.Pool, error)) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or recolor a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := poolOf()
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := loadTags(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := reg.Update(ctxOf(cmd), pool, id, name, color); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, reg.Tags(pool))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New color")
	return cmd
}

func newTagsDeleteCmd(app *App, poolOf func() (apiclient.Pool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tag (asks for confirmation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := poolOf()
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := loadTags(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := reg.Delete(ctxOf(cmd), pool, id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}

func newTagsMoveCmd(app *App, poolOf func() (apiclient.Pool, error)) *cobra.Command {
	var to int

	cmd := &cobra.Command{
		Use:   "move <id> --to <index>",
		Short: "Move a tag to a new position within its pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := poolOf()
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := loadTags(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			from := slices.IndexFunc(reg.Tags(pool), func(t apiclient.Tag) bool { return t.ID == id })
			if from < 0 {
				return writeErr(cmd, dashboard.ErrNotFound)
			}
			if err := reg.Reorder(ctxOf(cmd), pool, from, to); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, reg.Tags(pool))
		},
	}

	cmd.Flags().IntVar(&to, "to", 0, "Target zero-based position")
	return cmd
}
