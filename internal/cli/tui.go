package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/tasks"
	"github.com/idilsaglam/tada/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	var filter, sort string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive view",
		Long: `Open the interactive view. Without a session it starts on the
login screen. Every change is saved as soon as it is made.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := tasks.ParseFilter(filter)
			if err != nil {
				return usageErr("tui: %v", err)
			}
			key, err := tasks.ParseSortKey(sort)
			if err != nil {
				return usageErr("tui: %v", err)
			}
			a.open()
			opt := tui.Options{Filter: f, Sort: key}
			if err := tui.Run(a.tasks, a.session, opt, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return failure(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "initial priority filter: all, low, medium or high")
	cmd.Flags().StringVarP(&sort, "sort", "s", "created", "initial sort: created, updated or priority")
	return cmd
}
