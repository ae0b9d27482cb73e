// Package cli implements the tada command line.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/ui"
)

// Version is set at build time.
var Version = "dev"

// NewRootCmd builds the command tree for one invocation.
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	root := &cobra.Command{
		Use:   "tada",
		Short: "tada - a tiny single-user task tracker",
		Long: `tada keeps your tasks in a local JSON file.

Log in with any username and password, then add, edit, complete and
remove tasks from the command line or the interactive view (tada tui).`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageErr("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tada/config.yaml)")
	pf.StringVar(&a.dataFile, "data-file", "", "data file (overrides config)")
	pf.StringVar(&a.theme, "theme", "", "output theme: classic, neon or mono")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoAmICmd(a),
		newAddCmd(a),
		newListCmd(a),
		newEditCmd(a),
		newDoneCmd(a),
		newRemoveCmd(a),
		newTUICmd(a),
		newConfigCmd(a),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		ui.Fail(stderr, err.Error())
	}
	return exitCode(err)
}
