package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/amterp/cards/internal/config"
	"github.com/amterp/ra"
)

func registerConfig(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("config")
	cmd.SetDescription("List the path to the Cards db, or change the saved defaults")

	ctx.ConfigSetDBDir, _ = ra.NewString("set-db-dir").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Save this directory as the default db location").
		Register(cmd)

	ctx.ConfigSetBackend, _ = ra.NewString("set-backend").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Save this backend (json or sqlite) as the default").
		Register(cmd)

	ctx.ConfigUsed, _ = parent.RegisterCmd(cmd)
}

// runConfig prints the resolved storage directory, or saves new defaults
// to the user config file when a --set flag is given.
// The repository is not opened, so nothing is created on disk.
func runConfig(app *App, setDBDir, setBackend string) error {
	setDBDir = strings.TrimSpace(setDBDir)
	setBackend = strings.TrimSpace(setBackend)
	if setDBDir == "" && setBackend == "" {
		_, err := fmt.Fprintln(app.Out, app.Settings.DBDir)
		return err
	}

	// Refuse to overwrite a file we couldn't read.
	cfg, err := app.Config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if setDBDir != "" {
		dir, err := filepath.Abs(config.ExpandHome(setDBDir))
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", setDBDir, err)
		}
		cfg.DBDir = dir
	}
	if setBackend != "" {
		backend, err := config.ParseBackend(setBackend)
		if err != nil {
			return err
		}
		cfg.Backend = string(backend)
	}

	if err := app.Config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if setDBDir != "" {
		PrintSuccess(app.Out, "Default db dir set to %s", cfg.DBDir)
	}
	if setBackend != "" {
		PrintSuccess(app.Out, "Default backend set to %s", cfg.Backend)
	}
	return nil
}
