package cli

import (
	"io"
	"os"

	"github.com/amterp/cards/internal/config"
	"github.com/amterp/cards/internal/owner"
	"github.com/amterp/cards/internal/prompt"
	"github.com/amterp/cards/internal/repository"
	"github.com/amterp/cards/internal/store"
	"golang.org/x/term"
)

// App holds all the dependencies for the CLI.
type App struct {
	Settings config.Settings
	Env      config.Env
	Config   store.ConfigStore
	Prompter prompt.Prompter
	Out      io.Writer
	ErrOut   io.Writer
}

// NewApp resolves the storage settings and wires up the CLI dependencies.
// Prompts are only offered when interactive is true and stdin is a terminal.
func NewApp(overrides config.Overrides, interactive bool) (*App, error) {
	configStore := store.NewConfigStore()

	// Load user config with warnings (don't silently ignore errors)
	userCfg, err := configStore.Load()
	if err != nil {
		PrintWarning(os.Stderr, "failed to load config: %v", err)
		userCfg = nil
	}

	environment, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}

	settings, err := config.Resolve(overrides, environment, userCfg)
	if err != nil {
		return nil, err
	}

	var prompter prompt.Prompter
	if interactive && term.IsTerminal(int(os.Stdin.Fd())) {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	return &App{
		Settings: settings,
		Env:      environment,
		Config:   configStore,
		Prompter: prompter,
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
	}, nil
}

// WithRepo opens the card repository for the duration of fn.
func (a *App) WithRepo(fn func(*repository.CardRepository) error) error {
	return repository.With(a.Settings.DBDir, fn, repository.WithBackend(a.Settings.Backend))
}

// CanPrompt reports whether interactive prompts are available.
func (a *App) CanPrompt() bool {
	_, noop := a.Prompter.(*prompt.NoopPrompter)
	return !noop
}

// CurrentOwner returns the owner name --mine stands for.
func (a *App) CurrentOwner() (string, error) {
	return owner.Current(a.Env.User, a.Env.SystemUser, owner.NewGitClient())
}

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError(os.Stderr, "Error: %v", err)
	os.Exit(1)
}

