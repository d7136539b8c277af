package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/amterp/cards/internal/model"
	"github.com/amterp/cards/internal/repository"
	"github.com/amterp/cards/internal/watch"
	"github.com/amterp/ra"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func registerList(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("list")
	cmd.SetDescription("List cards in the db")

	ctx.ListOwner, _ = ra.NewString("owner").
		SetShort("o").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Only cards assigned to this owner").
		Register(cmd)

	ctx.ListMine, _ = ra.NewBool("mine").
		SetShort("m").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Only cards assigned to you").
		Register(cmd)

	ctx.ListState, _ = ra.NewString("state").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Only cards in this state (todo, in prog, done)").
		Register(cmd)

	ctx.ListJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.ListWatch, _ = ra.NewBool("watch").
		SetShort("w").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Redraw whenever the db changes").
		Register(cmd)

	ctx.ListUsed, _ = parent.RegisterCmd(cmd)
}

func runList(app *App, owner, state string, jsonOutput, watchMode bool) error {
	filter, err := buildFilter(owner, state)
	if err != nil {
		return err
	}

	if watchMode {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return watchList(ctx, app, filter, jsonOutput)
	}

	cards, err := listCards(app, filter)
	if err != nil {
		return err
	}
	return printCards(app.Out, cards, jsonOutput)
}

func listCards(app *App, filter model.ListFilter) ([]*model.Card, error) {
	var cards []*model.Card
	err := app.WithRepo(func(repo *repository.CardRepository) error {
		var err error
		cards, err = repo.List(filter)
		return err
	})
	return cards, err
}

// watchList redraws the listing each time the storage changes until ctx ends.
func watchList(ctx context.Context, app *App, filter model.ListFilter, jsonOutput bool) error {
	// Make sure the directory exists before watching it.
	if err := app.WithRepo(func(*repository.CardRepository) error { return nil }); err != nil {
		return err
	}

	w, err := watch.NewStorageWatcher(app.Settings.DBDir, watch.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	for {
		cards, err := listCards(app, filter)
		if err != nil {
			return err
		}
		if !jsonOutput {
			fmt.Fprint(app.Out, "\033[H\033[2J")
		}
		if err := printCards(app.Out, cards, jsonOutput); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors():
			PrintWarning(app.ErrOut, "watcher: %v", err)
		case <-w.Changes():
		}
	}
}

func printCards(w io.Writer, cards []*model.Card, jsonOutput bool) error {
	if jsonOutput {
		return printJson(w, NewListOutput(cards))
	}

	if len(cards) == 0 {
		PrintInfo(w, "No cards found")
		return nil
	}

	_, err := fmt.Fprintln(w, renderTable(cards))
	return err
}

func renderTable(cards []*model.Card) string {
	rows := make([][]string, 0, len(cards))
	for _, card := range cards {
		f := card.Fields()
		rows = append(rows, []string{f[0], f[3], f[2], f[1]})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	header := cell.Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleMuted).
		Headers("ID", "State", "Owner", "Summary").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 0 {
				return cell.Foreground(ColorAccent)
			}
			if col == 1 && row >= 0 && row < len(cards) {
				if s, ok := stateStyles[cards[row].State]; ok {
					return cell.Foreground(s.GetForeground())
				}
			}
			return cell
		})

	return t.String()
}
