package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/amterp/cards/internal/model"
	"github.com/amterp/cards/internal/version"
)

// document is the on-disk form of the JSON backend: every card plus the
// id counter, so both are replaced together on each write.
type document struct {
	Version int           `json:"_v"`
	LastID  int           `json:"last_id"`
	Cards   []*model.Card `json:"cards"`
}

func newDocument() *document {
	return &document{
		Version: version.CurrentDBVersion,
		Cards:   []*model.Card{},
	}
}

func decodeDocument(path string, data []byte) (*document, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	if doc.Version == 0 {
		return nil, version.MissingDBVersion(path)
	}
	if doc.Version != version.CurrentDBVersion {
		return nil, version.InvalidDBVersion(path, doc.Version)
	}

	seen := make(map[int]bool, len(doc.Cards))
	for _, card := range doc.Cards {
		if card == nil {
			return nil, fmt.Errorf("null card entry in %s", path)
		}
		if seen[card.ID] {
			return nil, fmt.Errorf("duplicate card id %d in %s", card.ID, path)
		}
		seen[card.ID] = true
		if err := card.Validate(); err != nil {
			return nil, fmt.Errorf("card %d in %s: %w", card.ID, path, err)
		}
		// Never hand out an id that is already stored, even if the counter
		// was edited backwards.
		if card.ID > doc.LastID {
			doc.LastID = card.ID
		}
	}
	if doc.Cards == nil {
		doc.Cards = []*model.Card{}
	}
	doc.sort()

	return &doc, nil
}

func (d *document) encode() ([]byte, error) {
	d.Version = version.CurrentDBVersion
	d.sort()
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cards: %w", err)
	}
	return append(data, '\n'), nil
}

func (d *document) sort() {
	sort.Slice(d.Cards, func(i, j int) bool {
		return d.Cards[i].ID < d.Cards[j].ID
	})
}

// index returns the position of the card with id, or -1.
func (d *document) index(id int) int {
	i := sort.Search(len(d.Cards), func(i int) bool {
		return d.Cards[i].ID >= id
	})
	if i < len(d.Cards) && d.Cards[i].ID == id {
		return i
	}
	return -1
}
