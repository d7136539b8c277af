package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/amterp/cards/internal/model"
)

// cardJson represents a card for JSON output.
// Unlike the stored form, empty summary and owner are always present so
// scripts can rely on every key.
//
// SYNC WARNING: This struct must stay in sync with model.Card fields.
// If you add fields to model.Card, add them here too. See TestCardJsonFieldSync.
type cardJson struct {
	ID      int    `json:"id"`
	Summary string `json:"summary"`
	Owner   string `json:"owner"`
	State   string `json:"state"`
}

func cardToJson(c *model.Card) cardJson {
	return cardJson{
		ID:      c.ID,
		Summary: c.Summary,
		Owner:   c.Owner,
		State:   string(c.State),
	}
}

// CardOutput wraps a single card for JSON output.
type CardOutput struct {
	Card cardJson `json:"card"`
}

// NewCardOutput creates a CardOutput from a model.Card.
func NewCardOutput(card *model.Card) CardOutput {
	return CardOutput{Card: cardToJson(card)}
}

// ListOutput wraps a list of cards for JSON output.
type ListOutput struct {
	Cards []cardJson `json:"cards"`
	Count int        `json:"count"`
}

// NewListOutput creates a ListOutput from a slice of model.Card.
// Always returns an empty array (not null) when there are no cards.
func NewListOutput(cards []*model.Card) ListOutput {
	result := make([]cardJson, 0, len(cards))
	for _, c := range cards {
		result = append(result, cardToJson(c))
	}
	return ListOutput{Cards: result, Count: len(result)}
}

// printJson marshals the value as indented JSON and writes it to w.
func printJson(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// CountOutput is the JSON form of "cards count".
type CountOutput struct {
	Count  int `json:"count"`
	LastID int `json:"last_id"`
}
