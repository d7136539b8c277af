package cli

import (
	"fmt"

	"github.com/amterp/cards/internal/repository"
	"github.com/amterp/ra"
)

func registerShow(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("show")
	cmd.SetDescription("Show a single card")

	ctx.ShowID, _ = ra.NewInt("id").
		SetUsage("Card ID").
		Register(cmd)

	ctx.ShowJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.ShowUsed, _ = parent.RegisterCmd(cmd)
}

func runShow(app *App, id int, jsonOutput bool) error {
	return app.WithRepo(func(repo *repository.CardRepository) error {
		card, err := repo.Get(id)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJson(app.Out, NewCardOutput(card))
		}

		owner := card.Owner
		if owner == "" {
			owner = RenderMuted("(unassigned)")
		}
		fmt.Fprintf(app.Out, "%s %s\n", RenderBold("ID:     "), RenderID(card.ID))
		fmt.Fprintf(app.Out, "%s %s\n", RenderBold("State:  "), RenderState(card.State))
		fmt.Fprintf(app.Out, "%s %s\n", RenderBold("Owner:  "), owner)
		fmt.Fprintf(app.Out, "%s %s\n", RenderBold("Summary:"), card.Summary)
		return nil
	})
}
