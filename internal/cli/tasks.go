package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/tasks"
	"github.com/idilsaglam/tada/internal/ui"
)

// taskErr turns a manager error into a command error: bad input is a
// usage error, anything else is a failure.
func taskErr(action string, err error) error {
	for _, v := range []error{
		tasks.ErrEmptyTitle,
		tasks.ErrTitleTooLong,
		tasks.ErrDescriptionTooLong,
		tasks.ErrTaskNotFound,
		model.ErrInvalidPriority,
	} {
		if errors.Is(err, v) {
			return usageErr("%s: %v", action, err)
		}
	}
	return failure(fmt.Errorf("failed to %s: %w", action, err))
}

func newAddCmd(a *app) *cobra.Command {
	var description, priority string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task (title can be multiple words)",
		Example: `  tada add "Buy milk"
  tada add Write tests -p high -d "cover the store"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			p, err := model.ParsePriority(priority)
			if err != nil {
				return usageErr("add: %v", err)
			}
			t, err := a.tasks.Add(strings.Join(args, " "), description, p)
			if err != nil {
				return taskErr("create task", err)
			}
			ui.OK(cmd.OutOrStdout(), "added: "+t.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(model.PriorityMedium), "low, medium or high")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var title, description, priority string
	cmd := &cobra.Command{
		Use:   "edit <ref>",
		Short: "Change a task's title, description or priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			t, err := resolveRef(a.tasks, args[0])
			if err != nil {
				return usageErr("edit: %v", err)
			}

			var patch model.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("priority") {
				p, err := model.ParsePriority(priority)
				if err != nil {
					return usageErr("edit: %v", err)
				}
				patch.Priority = &p
			}
			if patch.Empty() {
				return usageErr("edit: nothing to change (use --title, --description or --priority)")
			}

			if err := a.tasks.Update(t.ID, patch); err != nil {
				return taskErr("update task", err)
			}
			ui.OK(cmd.OutOrStdout(), "updated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority: low, medium or high")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done <ref>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task between open and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			t, err := resolveRef(a.tasks, args[0])
			if err != nil {
				return usageErr("done: %v", err)
			}
			if err := a.tasks.ToggleCompletion(t.ID); err != nil {
				return taskErr("update task", err)
			}
			if t.IsCompleted {
				ui.OK(cmd.OutOrStdout(), "reopened: "+t.Title)
			} else {
				ui.OK(cmd.OutOrStdout(), "completed: "+t.Title)
			}
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"delete"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			t, err := resolveRef(a.tasks, args[0])
			if err != nil {
				return usageErr("rm: %v", err)
			}
			if err := a.tasks.Delete(t.ID); err != nil {
				return taskErr("delete task", err)
			}
			ui.OK(cmd.OutOrStdout(), "removed: "+t.Title)
			return nil
		},
	}
}
