package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/NabievDev/NewPeople-sub000/internal/dashboard"
	"github.com/NabievDev/NewPeople-sub000/pkg/apiclient"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage the category tree",
	}
	cmd.AddCommand(newCategoriesListCmd(app))
	cmd.AddCommand(newCategoriesCreateCmd(app))
	cmd.AddCommand(newCategoriesRenameCmd(app))
	cmd.AddCommand(newCategoriesDeleteCmd(app))
	cmd.AddCommand(newCategoriesMoveCmd(app))
	cmd.AddCommand(newCategoriesPickCmd(app))
	return cmd
}

// loadTree 加载分类树。
func loadTree(cmd *cobra.Command, app *App) (*dashboard.CategoryTree, error) {
	tree := app.dashboard(cmd).Categories
	if err := tree.Load(ctxOf(cmd)); err != nil {
		return nil, err
	}
	return tree, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func newCategoriesListCmd(app *App) *cobra.Command {
	var flat bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the category tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !flat {
				return writeOut(cmd, app, tree.Roots())
			}
			for _, c := range tree.Flatten() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", c.ID, c.Label)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flat, "flat", false, "Print an indented text listing instead of JSON")
	return cmd
}

func newCategoriesCreateCmd(app *App) *cobra.Command {
	var (
		parent      int64
		description string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a root category, or a child with --parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var parentID *int64
			if parent > 0 {
				// 界面上树最多两层，父级只能是根分类
				if !slices.ContainsFunc(tree.ParentOptions(), func(c apiclient.Category) bool { return c.ID == parent }) {
					return writeErr(cmd, fmt.Errorf("parent %d is not a root category", parent))
				}
				parentID = &parent
			}
			var desc *string
			if description != "" {
				desc = &description
			}
			if err := tree.Create(ctxOf(cmd), args[0], parentID, desc); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tree.Roots())
		},
	}

	cmd.Flags().Int64Var(&parent, "parent", 0, "Parent category id (root categories only)")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	return cmd
}

func newCategoriesRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			tree, err := loadTree(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := tree.BeginEdit(id); err != nil {
				return writeErr(cmd, err)
			}
			if err := tree.Rename(ctxOf(cmd), id, args[1]); err != nil {
				return writeErr(cmd, err)
			}
			c, _ := tree.Find(id)
			return writeOut(cmd, app, c)
		},
	}
}

func newCategoriesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category (asks for confirmation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			tree, err := loadTree(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := tree.Delete(ctxOf(cmd), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}

func newCategoriesMoveCmd(app *App) *cobra.Command {
	var to int

	cmd := &cobra.Command{
		Use:   "move <id> --to <index>",
		Short: "Move a category to a new position among its siblings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			tree, err := loadTree(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, ok := tree.Find(id)
			if !ok {
				return writeErr(cmd, dashboard.ErrNotFound)
			}
			siblings := tree.Roots()
			if c.ParentID != nil {
				parent, ok := tree.Find(*c.ParentID)
				if !ok {
					return writeErr(cmd, dashboard.ErrNotFound)
				}
				siblings = parent.Subcategories
			}
			from := slices.IndexFunc(siblings, func(s apiclient.Category) bool { return s.ID == id })
			if err := tree.Reorder(ctxOf(cmd), c.ParentID, from, to); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tree.Roots())
		},
	}

	cmd.Flags().IntVar(&to, "to", 0, "Target zero-based position")
	return cmd
}

// newCategoriesPickCmd 交互式地走一遍公开表单的分类选择器。
func newCategoriesPickCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Interactively choose a category the way the public form does",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			picker := dashboard.NewCategoryPicker(tree.Roots())
			out := cmd.ErrOrStderr()
			for picker.Open() {
				for _, c := range picker.Options() {
					marker := ""
					if len(c.Subcategories) > 0 {
						marker = " >"
					}
					fmt.Fprintf(out, "  %d\t%s%s\n", c.ID, c.Name, marker)
				}
				fmt.Fprint(out, "id (b = back, q = quit): ")
				answer := readLine(cmd.InOrStdin())
				switch answer {
				case "q", "":
					return writeErr(cmd, dashboard.ErrCancelled)
				case "b":
					picker.Back()
					continue
				}
				id, err := parseID(answer)
				if err != nil {
					fmt.Fprintln(out, err)
					continue
				}
				if _, err := picker.Choose(id); err != nil {
					if errors.Is(err, dashboard.ErrNotFound) {
						fmt.Fprintf(out, "no category %d at this level\n", id)
						continue
					}
					return writeErr(cmd, err)
				}
			}
			selected, _ := picker.Selected()
			return writeOut(cmd, app, selected)
		},
	}
}
