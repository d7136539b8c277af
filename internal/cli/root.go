package cli

import (
	"os"

	"github.com/amterp/cards/internal/config"
	"github.com/amterp/cards/internal/version"
	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	DBDir          *string
	Backend        *string

	// add command
	AddUsed    *bool
	AddSummary *string
	AddOwner   *string
	AddMine    *bool

	// list command
	ListUsed  *bool
	ListOwner *string
	ListState *string
	ListJson  *bool
	ListWatch *bool
	ListMine  *bool

	// show command
	ShowUsed *bool
	ShowID   *int
	ShowJson *bool

	// count command
	CountUsed *bool
	CountJson *bool

	// update command
	UpdateUsed     *bool
	UpdateID       *int
	UpdateOwner    *string
	UpdateSummary  *string
	UpdateState    *string
	UpdateUnassign *bool

	// start command
	StartUsed *bool
	StartID   *int

	// finish command
	FinishUsed *bool
	FinishID   *int

	// delete command
	DeleteUsed  *bool
	DeleteID    *int
	DeleteAll   *bool
	DeleteForce *bool

	// config command
	ConfigUsed       *bool
	ConfigSetDBDir   *string
	ConfigSetBackend *string

	// version command
	VersionUsed *bool
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("cards")
	cmd.SetDescription("Run the cards application " + version.AppVersion)

	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.DBDir, _ = ra.NewString("db-dir").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Directory holding the cards db (overrides CARDS_DB_DIR)").
		Register(cmd, ra.WithGlobal(true))

	ctx.Backend, _ = ra.NewString("backend").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Storage backend: json or sqlite (overrides CARDS_BACKEND)").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerAdd(cmd, ctx)
	registerList(cmd, ctx)
	registerShow(cmd, ctx)
	registerCount(cmd, ctx)
	registerUpdate(cmd, ctx)
	registerStart(cmd, ctx)
	registerFinish(cmd, ctx)
	registerDelete(cmd, ctx)
	registerConfig(cmd, ctx)
	registerVersion(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	if err := executeCommand(ctx); err != nil {
		Fatal(err)
	}
}

func executeCommand(ctx *CommandContext) error {
	// version needs no storage settings, so don't let a broken config block it.
	if *ctx.VersionUsed {
		return runVersion(&App{Out: os.Stdout, ErrOut: os.Stderr})
	}

	overrides := config.Overrides{DBDir: *ctx.DBDir, Backend: *ctx.Backend}
	app, err := NewApp(overrides, !*ctx.NonInteractive)
	if err != nil {
		return err
	}

	return dispatch(app, ctx)
}

func dispatch(app *App, ctx *CommandContext) error {
	switch {
	case *ctx.AddUsed:
		owner, err := ownerArg(app, *ctx.AddOwner, *ctx.AddMine)
		if err != nil {
			return err
		}
		return runAdd(app, *ctx.AddSummary, owner)

	case *ctx.ListUsed:
		owner, err := ownerArg(app, *ctx.ListOwner, *ctx.ListMine)
		if err != nil {
			return err
		}
		return runList(app, owner, *ctx.ListState, *ctx.ListJson, *ctx.ListWatch)

	case *ctx.ShowUsed:
		return runShow(app, *ctx.ShowID, *ctx.ShowJson)

	case *ctx.CountUsed:
		return runCount(app, *ctx.CountJson)

	case *ctx.UpdateUsed:
		return runUpdate(app, *ctx.UpdateID, *ctx.UpdateOwner, *ctx.UpdateSummary, *ctx.UpdateState, *ctx.UpdateUnassign)

	case *ctx.StartUsed:
		return runStart(app, *ctx.StartID)

	case *ctx.FinishUsed:
		return runFinish(app, *ctx.FinishID)

	case *ctx.DeleteUsed:
		return runDelete(app, *ctx.DeleteID, *ctx.DeleteAll, *ctx.DeleteForce)

	case *ctx.ConfigUsed:
		return runConfig(app, *ctx.ConfigSetDBDir, *ctx.ConfigSetBackend)

	case *ctx.VersionUsed:
		return runVersion(app)

	default:
		// Bare "cards" lists everything.
		return runList(app, "", "", false, false)
	}
}
