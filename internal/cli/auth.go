package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/idilsaglam/tada/internal/session"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Start a session (any non-empty username and password)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.open()
			if !cmd.Flags().Changed("password") {
				p, err := readPassword(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return usageErr("read password: %v", err)
				}
				password = p
			}
			if err := a.session.Login(args[0], password); err != nil {
				if errors.Is(err, session.ErrMissingCredentials) {
					return usageErr("login: %v", err)
				}
				return failure(fmt.Errorf("login failed: %w", err))
			}
			user := a.session.Current().Username
			ui.OK(cmd.OutOrStdout(), "logged in as "+user)
			if store.IsSampleSet(a.tasks.Tasks()) {
				ui.Info(cmd.OutOrStdout(), fmt.Sprintf("Welcome to tada, %s! We've prepared some sample tasks to get you started.", user))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.open()
			if err := a.session.Logout(); err != nil {
				return failure(fmt.Errorf("failed to log out: %w", err))
			}
			ui.Info(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoAmICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.open()
			out := cmd.OutOrStdout()
			s := a.session.Current()
			if !s.IsAuthenticated {
				fmt.Fprintln(out, ui.Current().Muted.Render("not logged in"))
				fmt.Fprintln(out, "Run: tada login <username>")
				return nil
			}
			fmt.Fprintf(out, "user: %s\n", s.Username)
			fmt.Fprintf(out, "data: %s\n", a.cfg.DataFile)
			return nil
		},
	}
}

// readPassword prompts on out. A terminal on in is read with echo off;
// anything else is read up to the first newline.
func readPassword(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	defer fmt.Fprintln(out)

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
