package store

import (
	"fmt"
	"os"

	"github.com/amterp/cards/internal/config"
	kanerr "github.com/amterp/cards/internal/errors"
	"github.com/amterp/cards/internal/model"
)

// FileCardStore implements CardStore as a single JSON document.
// Every mutation is a locked read-modify-write followed by an atomic
// replace, so concurrent processes only ever observe whole documents.
type FileCardStore struct {
	paths *config.Paths
	lock  *fileLock

	// afterRead runs inside Update while the lock is held. Tests only.
	afterRead func()
}

// NewCardStore opens the JSON store, creating an empty document if absent.
// The storage directory must already exist.
func NewCardStore(paths *config.Paths) (*FileCardStore, error) {
	lock, err := openLock(paths.LockPath())
	if err != nil {
		return nil, err
	}

	s := &FileCardStore{paths: paths, lock: lock}
	if err := s.ensureDocument(); err != nil {
		lock.Close()
		return nil, err
	}
	return s, nil
}

// Insert assigns the next id to a copy of card and stores it.
func (s *FileCardStore) Insert(card *model.Card) (int, error) {
	if err := card.Validate(); err != nil {
		return 0, err
	}

	var id int
	err := s.mutate(func(doc *document) error {
		doc.LastID++
		id = doc.LastID

		stored := card.Clone()
		stored.ID = id
		doc.Cards = append(doc.Cards, stored)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add card: %w", err)
	}
	return id, nil
}

// Get returns the card with the given id.
func (s *FileCardStore) Get(id int) (*model.Card, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	i := doc.index(id)
	if i < 0 {
		return nil, kanerr.InvalidCardId(id)
	}
	return doc.Cards[i], nil
}

// Update applies update to the stored card inside one locked
// read-modify-write, so concurrent writers never lose each other's fields.
func (s *FileCardStore) Update(id int, update model.CardUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}

	return s.mutate(func(doc *document) error {
		i := doc.index(id)
		if i < 0 {
			return kanerr.InvalidCardId(id)
		}
		if s.afterRead != nil {
			s.afterRead()
		}
		update.Apply(doc.Cards[i])
		return doc.Cards[i].Validate()
	})
}

// Remove deletes the card with the given id. The counter is untouched.
func (s *FileCardStore) Remove(id int) error {
	return s.mutate(func(doc *document) error {
		i := doc.index(id)
		if i < 0 {
			return kanerr.InvalidCardId(id)
		}
		doc.Cards = append(doc.Cards[:i], doc.Cards[i+1:]...)
		return nil
	})
}

// RemoveAll deletes every card. The counter is untouched.
func (s *FileCardStore) RemoveAll() error {
	return s.mutate(func(doc *document) error {
		doc.Cards = []*model.Card{}
		return nil
	})
}

// List returns all cards in ascending id order.
func (s *FileCardStore) List() ([]*model.Card, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Cards, nil
}

// Count returns the number of stored cards.
func (s *FileCardStore) Count() (int, error) {
	doc, err := s.read()
	if err != nil {
		return 0, err
	}
	return len(doc.Cards), nil
}

// LastID returns the highest id ever issued.
func (s *FileCardStore) LastID() (int, error) {
	doc, err := s.read()
	if err != nil {
		return 0, err
	}
	return doc.LastID, nil
}

// Close releases the lock file.
func (s *FileCardStore) Close() error {
	return s.lock.Close()
}

func (s *FileCardStore) ensureDocument() error {
	unlock, err := s.lock.Lock(true)
	if err != nil {
		return err
	}
	defer unlock()

	path := s.paths.DocumentPath()
	if _, err := os.Stat(path); err == nil {
		// Validate existing contents up front so Open fails on a bad file.
		_, err := s.readDocument()
		return err
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return s.writeDocument(newDocument())
}

func (s *FileCardStore) read() (*document, error) {
	unlock, err := s.lock.Lock(false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.readDocument()
}

func (s *FileCardStore) mutate(fn func(doc *document) error) error {
	unlock, err := s.lock.Lock(true)
	if err != nil {
		return err
	}
	defer unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.writeDocument(doc)
}

func (s *FileCardStore) readDocument() (*document, error) {
	path := s.paths.DocumentPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newDocument(), nil
		}
		return nil, fmt.Errorf("failed to read cards: %w", err)
	}
	return decodeDocument(path, data)
}

func (s *FileCardStore) writeDocument(doc *document) error {
	data, err := doc.encode()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.paths.DocumentPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write cards: %w", err)
	}
	return nil
}

var _ CardStore = (*FileCardStore)(nil)
