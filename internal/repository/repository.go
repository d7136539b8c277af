// Package repository is the card storage and query API used by the CLI.
//
// A CardRepository is opened against a storage directory, used sequentially
// for one or more operations, and closed. It never logs; every failure is
// returned as an error from internal/errors or wrapped with context.
package repository

import (
	"fmt"
	"os"

	"github.com/amterp/cards/internal/config"
	kanerr "github.com/amterp/cards/internal/errors"
	"github.com/amterp/cards/internal/model"
	"github.com/amterp/cards/internal/store"
)

// CardRepository owns the persistent collection of cards and the id counter.
// It is not safe for concurrent use; callers serialize access.
type CardRepository struct {
	paths *config.Paths
	store store.CardStore
}

type options struct {
	backend config.Backend
}

// Option configures Open.
type Option func(*options)

// WithBackend selects the persistence backend. The default is JSON.
func WithBackend(backend config.Backend) Option {
	return func(o *options) {
		o.backend = backend
	}
}

// Open ensures storage exists at dir and returns a repository over it.
// Fails with StorageUnavailable if dir cannot be created or accessed.
func Open(dir string, opts ...Option) (*CardRepository, error) {
	o := options{backend: config.DefaultBackend}
	for _, opt := range opts {
		opt(&o)
	}

	if dir == "" {
		return nil, kanerr.StorageUnavailable(dir, fmt.Errorf("storage path is required"))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, kanerr.StorageUnavailable(dir, err)
	}

	paths := config.NewPaths(dir)
	s, err := store.Open(o.backend, paths)
	if err != nil {
		return nil, kanerr.StorageUnavailable(dir, err)
	}

	return &CardRepository{paths: paths, store: s}, nil
}

// NewWithStore wraps an already opened store.
func NewWithStore(dir string, s store.CardStore) *CardRepository {
	return &CardRepository{paths: config.NewPaths(dir), store: s}
}

// Add stores a copy of card under the next unused id and returns that id.
// Any id already set on card is ignored.
func (r *CardRepository) Add(card *model.Card) (int, error) {
	if card == nil {
		return 0, fmt.Errorf("card is required")
	}
	toStore := card.Clone()
	if toStore.State == "" {
		toStore.State = model.DefaultState
	}
	toStore.ID = 0
	return r.store.Insert(toStore)
}

// Get returns the card with the given id.
func (r *CardRepository) Get(id int) (*model.Card, error) {
	return r.store.Get(id)
}

// Update overwrites the fields set in update on the card with the given id.
// The merge happens inside the store's critical section.
func (r *CardRepository) Update(id int, update model.CardUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}

	if update.IsEmpty() {
		_, err := r.store.Get(id)
		return err
	}
	return r.store.Update(id, update)
}

// Start moves a card to "in prog".
func (r *CardRepository) Start(id int) error {
	return r.Update(id, model.StateUpdate(model.StateInProg))
}

// Finish moves a card to "done".
func (r *CardRepository) Finish(id int) error {
	return r.Update(id, model.StateUpdate(model.StateDone))
}

// Delete permanently removes the card with the given id.
func (r *CardRepository) Delete(id int) error {
	return r.store.Remove(id)
}

// DeleteAll removes every card. Ids already issued stay consumed.
func (r *CardRepository) DeleteAll() error {
	return r.store.RemoveAll()
}

// List returns the cards matching filter in ascending id order.
// Returns an empty slice when nothing matches.
func (r *CardRepository) List(filter model.ListFilter) ([]*model.Card, error) {
	all, err := r.store.List()
	if err != nil {
		return nil, err
	}

	cards := make([]*model.Card, 0, len(all))
	for _, card := range all {
		if filter.Matches(card) {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// Count returns the number of cards currently stored.
func (r *CardRepository) Count() (int, error) {
	return r.store.Count()
}

// LastID returns the highest id ever issued, including ids of deleted cards.
func (r *CardRepository) LastID() (int, error) {
	return r.store.LastID()
}

// Path returns the storage directory.
func (r *CardRepository) Path() string {
	return r.paths.DBDir()
}

// Close releases the storage handle.
func (r *CardRepository) Close() error {
	return r.store.Close()
}

// With opens a repository, runs fn, and closes it again even if fn fails.
func With(dir string, fn func(*CardRepository) error, opts ...Option) (err error) {
	repo, err := Open(dir, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := repo.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close storage: %w", cerr)
		}
	}()
	return fn(repo)
}
