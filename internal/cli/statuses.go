package cli

import (
	"slices"

	"github.com/NabievDev/NewPeople-sub000/internal/dashboard"
	"github.com/NabievDev/NewPeople-sub000/pkg/apiclient"

	"github.com/spf13/cobra"
)

func newStatusesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statuses",
		Short: "Manage appeal statuses",
	}
	cmd.AddCommand(newStatusesListCmd(app))
	cmd.AddCommand(newStatusesCreateCmd(app))
	cmd.AddCommand(newStatusesUpdateCmd(app))
	cmd.AddCommand(newStatusesDeleteCmd(app))
	cmd.AddCommand(newStatusesMoveCmd(app))
	return cmd
}

func loadStatuses(cmd *cobra.Command, app *App) (*dashboard.StatusRegistry, error) {
	reg := app.dashboard(cmd).Statuses
	if err := reg.Load(ctxOf(cmd)); err != nil {
		return nil, err
	}
	return reg, nil
}

func findStatus(reg *dashboard.StatusRegistry, id int64) (apiclient.Status, int, bool) {
	list := reg.Statuses()
	i := slices.IndexFunc(list, func(s apiclient.Status) bool { return s.ID == id })
	if i < 0 {
		return apiclient.Status{}, -1, false
	}
	return list[i], i, true
}

func newStatusesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List statuses in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadStatuses(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, reg.Statuses())
		},
	}
}

func newStatusesCreateCmd(app *App) *cobra.Command {
	var color, description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a status; its key is derived from the name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadStatuses(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var desc *string
			if description != "" {
				desc = &description
			}
			status, err := reg.Create(ctxOf(cmd), args[0], color, desc)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, status)
		},
	}

	cmd.Flags().StringVar(&color, "color", "#6B7280", "Hex color")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	return cmd
}

func newStatusesUpdateCmd(app *App) *cobra.Command {
	var name, color, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit name, color or description (the key never changes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := loadStatuses(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			status, _, ok := findStatus(reg, id)
			if !ok {
				return writeErr(cmd, dashboard.ErrNotFound)
			}
			if cmd.Flags().Changed("name") {
				status.Name = name
			}
			if cmd.Flags().Changed("color") {
				status.Color = color
			}
			if cmd.Flags().Changed("description") {
				status.Description = &description
			}
			if err := reg.Update(ctxOf(cmd), status); err != nil {
				return writeErr(cmd, err)
			}
			updated, _, _ := findStatus(reg, id)
			return writeOut(cmd, app, updated)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New color")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func newStatusesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom status (system statuses are refused)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := loadStatuses(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := reg.Delete(ctxOf(cmd), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}

func newStatusesMoveCmd(app *App) *cobra.Command {
	var to int

	cmd := &cobra.Command{
		Use:   "move <id> --to <index>",
		Short: "Move a status to a new position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := loadStatuses(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, from, ok := findStatus(reg, id)
			if !ok {
				return writeErr(cmd, dashboard.ErrNotFound)
			}
			if err := reg.Reorder(ctxOf(cmd), from, to); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, reg.Statuses())
		},
	}

	cmd.Flags().IntVar(&to, "to", 0, "Target zero-based position")
	return cmd
}
