package cli

import (
	"strings"

	"github.com/amterp/cards/internal/model"
	"github.com/amterp/cards/internal/repository"
	"github.com/amterp/ra"
)

func registerUpdate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("update")
	cmd.SetDescription("Modify a card in db with given id with new info")

	ctx.UpdateID, _ = ra.NewInt("id").
		SetUsage("Card ID").
		Register(cmd)

	ctx.UpdateOwner, _ = ra.NewString("owner").
		SetShort("o").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New owner").
		Register(cmd)

	ctx.UpdateSummary, _ = ra.NewString("summary").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New summary").
		Register(cmd)

	ctx.UpdateState, _ = ra.NewString("state").
		SetShort("S").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New state (todo, in prog, done)").
		Register(cmd)

	ctx.UpdateUnassign, _ = ra.NewBool("unassign").
		SetShort("u").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Clear the owner").
		Register(cmd)

	ctx.UpdateUsed, _ = parent.RegisterCmd(cmd)
}

func runUpdate(app *App, id int, owner, summary, state string, unassign bool) error {
	update := model.CardUpdate{
		Owner:   optionalText(owner),
		Summary: optionalText(summary),
	}
	if state = strings.TrimSpace(state); state != "" {
		s, err := model.ParseState(state)
		if err != nil {
			return err
		}
		update.State = &s
	}
	if unassign {
		if update.Owner != nil {
			return errConflictingFlags("--owner", "--unassign")
		}
		empty := ""
		update.Owner = &empty
	}

	return app.WithRepo(func(repo *repository.CardRepository) error {
		if update.IsEmpty() {
			// Still report unknown ids instead of silently succeeding.
			if _, err := repo.Get(id); err != nil {
				return err
			}
			PrintInfo(app.Out, "No changes made")
			return nil
		}

		if err := repo.Update(id, update); err != nil {
			return err
		}
		PrintSuccess(app.Out, "Updated card %s", RenderID(id))
		return nil
	})
}
