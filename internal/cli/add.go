package cli

import (
	"github.com/amterp/cards/internal/model"
	"github.com/amterp/cards/internal/repository"
	"github.com/amterp/ra"
)

func registerAdd(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("add")
	cmd.SetDescription("Add a card to the db")

	ctx.AddSummary, _ = ra.NewString("summary").
		SetOptional(true).
		SetUsage("Card summary (prompted for when omitted)").
		Register(cmd)

	ctx.AddOwner, _ = ra.NewString("owner").
		SetShort("o").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Who the card is assigned to").
		Register(cmd)

	ctx.AddMine, _ = ra.NewBool("mine").
		SetShort("m").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Assign the card to yourself").
		Register(cmd)

	ctx.AddUsed, _ = parent.RegisterCmd(cmd)
}

func runAdd(app *App, summary, owner string) error {
	summary = cleanText(summary)
	if summary == "" && app.CanPrompt() {
		input, err := app.Prompter.Input("Summary", "")
		if err != nil {
			return err
		}
		summary = cleanText(input)
	}

	card := model.NewCard(summary, cleanText(owner), model.StateTodo)

	return app.WithRepo(func(repo *repository.CardRepository) error {
		id, err := repo.Add(card)
		if err != nil {
			return err
		}
		PrintSuccess(app.Out, "Added card %s", RenderID(id))
		return nil
	})
}
