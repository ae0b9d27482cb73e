package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/session"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/tasks"
	"github.com/idilsaglam/tada/internal/ui"
)

// Exit codes: 0 ok, 1 runtime or persistence error, 2 usage, validation
// or auth error.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// exitError carries the exit code for an error returned from a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(format string, a ...any) error {
	return &exitError{code: ExitUsage, err: fmt.Errorf(format, a...)}
}

func failure(err error) error {
	return &exitError{code: ExitFailure, err: err}
}

// exitCode maps an error to the process exit code. Errors cobra raises
// itself (unknown command, bad flags, wrong arg count) are usage errors.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUsage
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	// flags
	configPath string
	dataFile   string
	theme      string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
	stderr io.Writer

	store   store.Store
	tasks   *tasks.Manager
	session *session.Manager
}

// setup loads config and builds the logger. It does not touch the data
// file, so config commands work without one.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return failure(err)
	}
	if a.dataFile != "" {
		cfg.DataFile = a.dataFile
	}
	if a.theme != "" {
		cfg.Theme = a.theme
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return usageErr("%v", err)
	}

	logger, err := logging.New(a.stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return usageErr("%v", err)
	}
	ui.SetTheme(cfg.Theme)

	a.cfg = cfg
	a.logger = logger
	return nil
}

// open loads the data file and builds both managers.
func (a *app) open() {
	if a.store != nil {
		return
	}
	a.store = jsonstore.New(a.cfg.DataFile, jsonstore.WithLogger(a.logger))
	a.tasks = tasks.New(a.store, tasks.WithLogger(a.logger))
	a.session = session.New(a.store, a.logger)
}

// requireLogin opens the data file and refuses to continue without an
// authenticated session.
func (a *app) requireLogin() error {
	a.open()
	if !a.session.Authenticated() {
		return usageErr("not logged in. Run: tada login <username>")
	}
	return nil
}
