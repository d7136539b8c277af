package store

import "github.com/amterp/cards/internal/model"

// CardStore handles card persistence.
// Implementations must commit the id counter advance and the record write of
// Insert as one atomic unit, apply Update against the current stored card in
// the same critical section that writes it, and persist every mutation
// before returning.
type CardStore interface {
	Insert(card *model.Card) (int, error) // Returns the assigned id
	Get(id int) (*model.Card, error)
	Update(id int, update model.CardUpdate) error
	Remove(id int) error
	RemoveAll() error
	List() ([]*model.Card, error) // Ascending id order
	Count() (int, error)
	LastID() (int, error) // Highest id ever issued
	Close() error
}

// ConfigStore handles user config persistence.
type ConfigStore interface {
	Load() (*model.UserConfig, error)
	Save(config *model.UserConfig) error
}
