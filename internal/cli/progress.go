package cli

import (
	"fmt"

	"github.com/amterp/cards/internal/model"
	"github.com/amterp/cards/internal/repository"
	"github.com/amterp/ra"
)

func registerStart(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("start")
	cmd.SetDescription("Set a card state to 'in prog'")

	ctx.StartID, _ = ra.NewInt("id").
		SetUsage("Card ID").
		Register(cmd)

	ctx.StartUsed, _ = parent.RegisterCmd(cmd)
}

func registerFinish(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("finish")
	cmd.SetDescription("Set a card state to 'done'")

	ctx.FinishID, _ = ra.NewInt("id").
		SetUsage("Card ID").
		Register(cmd)

	ctx.FinishUsed, _ = parent.RegisterCmd(cmd)
}

func runStart(app *App, id int) error {
	return runTransition(app, id, model.StateInProg, (*repository.CardRepository).Start)
}

func runFinish(app *App, id int) error {
	return runTransition(app, id, model.StateDone, (*repository.CardRepository).Finish)
}

func runTransition(app *App, id int, state model.State, move func(*repository.CardRepository, int) error) error {
	return app.WithRepo(func(repo *repository.CardRepository) error {
		if err := move(repo, id); err != nil {
			return err
		}
		PrintSuccess(app.Out, "Card %s is now %s", RenderID(id), RenderState(state))
		return nil
	})
}

func errConflictingFlags(a, b string) error {
	return fmt.Errorf("%s and %s can't be used together", a, b)
}
