package cli

import (
	"errors"
	"fmt"

	"github.com/amterp/cards/internal/repository"
	"github.com/amterp/ra"
)

// noCardID marks the id positional as not given.
const noCardID = -1

func registerDelete(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("delete")
	cmd.SetDescription("Remove card in db with given id")

	ctx.DeleteID, _ = ra.NewInt("id").
		SetOptional(true).
		SetDefault(noCardID).
		SetUsage("Card ID").
		Register(cmd)

	ctx.DeleteAll, _ = ra.NewBool("all").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Delete every card").
		Register(cmd)

	ctx.DeleteForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Skip confirmation (required in non-interactive mode)").
		Register(cmd)

	ctx.DeleteUsed, _ = parent.RegisterCmd(cmd)
}

func runDelete(app *App, id int, all, force bool) error {
	switch {
	case all && id != noCardID:
		return errConflictingFlags("an id", "--all")
	case all:
		return runDeleteAll(app, force)
	case id == noCardID:
		return errors.New("a card id is required (or --all)")
	}

	return app.WithRepo(func(repo *repository.CardRepository) error {
		if err := repo.Delete(id); err != nil {
			return err
		}
		PrintSuccess(app.Out, "Deleted card %s", RenderID(id))
		return nil
	})
}

func runDeleteAll(app *App, force bool) error {
	return app.WithRepo(func(repo *repository.CardRepository) error {
		n, err := repo.Count()
		if err != nil {
			return err
		}
		if n == 0 {
			PrintInfo(app.Out, "No cards to delete")
			return nil
		}

		if !force {
			if !app.CanPrompt() {
				return fmt.Errorf("deleting all %d cards requires --force in non-interactive mode", n)
			}
			confirmed, err := app.Prompter.Confirm(fmt.Sprintf("Delete all %d cards?", n), false)
			if err != nil {
				return err
			}
			if !confirmed {
				PrintInfo(app.Out, "Cancelled")
				return nil
			}
		}

		if err := repo.DeleteAll(); err != nil {
			return err
		}
		PrintSuccess(app.Out, "Deleted %d cards", n)
		return nil
	})
}
