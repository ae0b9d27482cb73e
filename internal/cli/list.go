package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/tasks"
	"github.com/idilsaglam/tada/internal/ui"
)

type listOptions struct {
	completed bool
	all       bool
	group     bool
	long      bool
	filter    string
	sort      string
}

func newListCmd(a *app) *cobra.Command {
	var opt listOptions
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks (open tasks by default)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			f, err := tasks.ParseFilter(opt.filter)
			if err != nil {
				return usageErr("ls: %v", err)
			}
			key, err := tasks.ParseSortKey(opt.sort)
			if err != nil {
				return usageErr("ls: %v", err)
			}
			ui.Panel(cmd.OutOrStdout(), listLines(a.tasks, opt, f, key))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&opt.completed, "completed", false, "show completed tasks")
	flags.BoolVarP(&opt.all, "all", "a", false, "show open and completed tasks")
	flags.BoolVarP(&opt.group, "group", "g", false, "group output by open/completed")
	flags.BoolVarP(&opt.long, "long", "l", false, "show IDs and descriptions")
	flags.StringVarP(&opt.filter, "filter", "f", "all", "priority filter: all, low, medium or high")
	flags.StringVarP(&opt.sort, "sort", "s", "created", "sort by created, updated or priority")
	return cmd
}

func listLines(m *tasks.Manager, opt listOptions, f tasks.Filter, key tasks.SortKey) []string {
	t := ui.Current()
	active, completed := m.Active(), m.Completed()
	refs := numbered(m)

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Tasks"),
		t.Success.Render("✔"), len(completed),
		t.Pending.Render("•"), len(active),
		t.Accent.Render("Total"), len(refs),
	)
	lines := []string{header, ui.ProgressBar(len(completed), len(refs), 28), ""}

	section := func(title string, src []model.Task, empty string) {
		shown := tasks.View(src, f, key)
		if title != "" {
			lines = append(lines, t.Accent.Render(title))
		}
		if len(shown) == 0 {
			lines = append(lines, t.Muted.Render(empty))
		} else {
			lines = append(lines, taskLines(shown, refs, opt.long)...)
		}
		if f != tasks.FilterAll {
			lines = append(lines, t.Muted.Render(fmt.Sprintf("Showing %d of %d tasks", len(shown), len(src))))
		}
	}

	switch {
	case opt.group:
		section("Open", active, "(none)")
		lines = append(lines, "")
		section("Completed", completed, "(none)")
	case opt.all:
		section("", m.Tasks(), "no tasks")
	case opt.completed:
		section("", completed, "no completed tasks yet")
	default:
		section("", active, "no open tasks")
	}

	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `tada add \"Buy milk\"`"))
	return lines
}

func taskLines(shown, refs []model.Task, long bool) []string {
	t := ui.Current()
	out := make([]string, 0, len(shown))
	for _, task := range shown {
		idx := t.Muted.Render(fmt.Sprintf("%2d.", numberOf(refs, task.ID)))
		title := ui.Truncate(task.Title, 80)
		if task.IsCompleted {
			title = t.Done.Render(title)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s", idx, ui.Checkbox(task.IsCompleted), ui.PriorityBadge(task.Priority), title))
		if long {
			out = append(out, t.Muted.Render("      id: "+task.ID))
			if task.Description != "" {
				out = append(out, "      "+ui.Truncate(task.Description, 80))
			}
		}
	}
	return out
}
