package store

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/amterp/cards/internal/config"
	kanerr "github.com/amterp/cards/internal/errors"
	"github.com/amterp/cards/internal/model"
	"github.com/amterp/cards/internal/version"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cards (
	id      INTEGER PRIMARY KEY,
	summary TEXT NOT NULL DEFAULT '',
	owner   TEXT NOT NULL DEFAULT '',
	state   TEXT NOT NULL CHECK (state IN ('todo', 'in prog', 'done'))
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
INSERT OR IGNORE INTO meta (key, value) VALUES ('last_id', 0);
`

// SQLiteCardStore implements CardStore on a SQLite database.
// The counter lives in the meta table and is bumped in the same
// transaction that inserts the card.
type SQLiteCardStore struct {
	db   *sql.DB
	path string

	// afterRead runs inside Update's transaction. Tests only.
	afterRead func()
}

// NewSQLiteCardStore opens (and if needed creates) the SQLite database.
// The storage directory must already exist.
func NewSQLiteCardStore(paths *config.Paths) (*SQLiteCardStore, error) {
	path := filepath.Clean(paths.SQLitePath())

	params := url.Values{}
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "synchronous(FULL)")
	params.Set("_txlock", "immediate")

	db, err := sql.Open("sqlite", path+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps pragmas and locking behaviour predictable.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &SQLiteCardStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteCardStore) migrate() error {
	var v int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v > version.CurrentDBVersion {
		return version.InvalidDBVersion(s.path, v)
	}

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version.CurrentDBVersion)); err != nil {
		return fmt.Errorf("stamp schema version: %w", err)
	}
	return nil
}

// Insert bumps the counter and stores the card in one transaction.
func (s *SQLiteCardStore) Insert(card *model.Card) (int, error) {
	if err := card.Validate(); err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to add card: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE meta SET value = value + 1 WHERE key = 'last_id'`); err != nil {
		return 0, fmt.Errorf("failed to advance counter: %w", err)
	}

	var id int
	if err := tx.QueryRow(`SELECT value FROM meta WHERE key = 'last_id'`).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO cards (id, summary, owner, state) VALUES (?, ?, ?, ?)`,
		id, card.Summary, card.Owner, string(card.State),
	); err != nil {
		return 0, fmt.Errorf("failed to add card: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to add card: %w", err)
	}
	return id, nil
}

// Get returns the card with the given id.
func (s *SQLiteCardStore) Get(id int) (*model.Card, error) {
	row := s.db.QueryRow(`SELECT id, summary, owner, state FROM cards WHERE id = ?`, id)
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kanerr.InvalidCardId(id)
		}
		return nil, fmt.Errorf("failed to read card %d: %w", id, err)
	}
	return card, nil
}

// Update reads, applies and writes the card in one immediate transaction,
// which holds the database write lock from the first read.
func (s *SQLiteCardStore) Update(id int, update model.CardUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to update card %d: %w", id, err)
	}
	defer tx.Rollback()

	card, err := scanCard(tx.QueryRow(`SELECT id, summary, owner, state FROM cards WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kanerr.InvalidCardId(id)
		}
		return fmt.Errorf("failed to read card %d: %w", id, err)
	}
	if s.afterRead != nil {
		s.afterRead()
	}

	update.Apply(card)
	if err := card.Validate(); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`UPDATE cards SET summary = ?, owner = ?, state = ? WHERE id = ?`,
		card.Summary, card.Owner, string(card.State), id,
	); err != nil {
		return fmt.Errorf("failed to update card %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to update card %d: %w", id, err)
	}
	return nil
}

// Remove deletes the card with the given id. The counter is untouched.
func (s *SQLiteCardStore) Remove(id int) error {
	res, err := s.db.Exec(`DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card %d: %w", id, err)
	}
	return requireAffected(res, id)
}

// RemoveAll deletes every card. The counter is untouched.
func (s *SQLiteCardStore) RemoveAll() error {
	if _, err := s.db.Exec(`DELETE FROM cards`); err != nil {
		return fmt.Errorf("failed to delete cards: %w", err)
	}
	return nil
}

// List returns all cards in ascending id order.
func (s *SQLiteCardStore) List() ([]*model.Card, error) {
	rows, err := s.db.Query(`SELECT id, summary, owner, state FROM cards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := []*model.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// Count returns the number of stored cards.
func (s *SQLiteCardStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM cards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return n, nil
}

// LastID returns the highest id ever issued.
func (s *SQLiteCardStore) LastID() (int, error) {
	var id int
	if err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_id'`).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}
	return id, nil
}

// Close closes the underlying database.
func (s *SQLiteCardStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*model.Card, error) {
	var card model.Card
	var state string
	if err := row.Scan(&card.ID, &card.Summary, &card.Owner, &state); err != nil {
		return nil, err
	}
	card.State = model.State(state)
	return &card, nil
}

func requireAffected(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check result for card %d: %w", id, err)
	}
	if n == 0 {
		return kanerr.InvalidCardId(id)
	}
	return nil
}

var _ CardStore = (*SQLiteCardStore)(nil)
