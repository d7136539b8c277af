package cli

import (
	"fmt"

	"github.com/amterp/cards/internal/repository"
	"github.com/amterp/ra"
)

func registerCount(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("count")
	cmd.SetDescription("Return the number of cards in db")

	ctx.CountJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON, including the last issued id").
		Register(cmd)

	ctx.CountUsed, _ = parent.RegisterCmd(cmd)
}

func runCount(app *App, jsonOutput bool) error {
	return app.WithRepo(func(repo *repository.CardRepository) error {
		n, err := repo.Count()
		if err != nil {
			return err
		}

		if jsonOutput {
			last, err := repo.LastID()
			if err != nil {
				return err
			}
			return printJson(app.Out, CountOutput{Count: n, LastID: last})
		}

		_, err = fmt.Fprintln(app.Out, n)
		return err
	})
}
