// Package statestore persists the last successful resolution so a restart
// comes back up showing the previous view.
package statestore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"skycast/models"
)

// Store is the minimal interface the pipeline uses to persist state.
type Store interface {
	// Save replaces the persisted record with the given state.
	Save(state models.ResolvedState) error
	// Load returns the persisted record, with ok=false when none exists.
	Load() (models.ResolvedState, bool, error)
	Close() error
}

// SQLiteStore implements Store on a single-row sqlite table (pure Go driver
// modernc.org/sqlite).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and applies the schema.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("warning: could not set WAL mode:", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS resolved_state (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        data TEXT NOT NULL,
        saved_at TEXT NOT NULL
    );`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(state models.ResolvedState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO resolved_state(id, data, saved_at) VALUES(1, ?, ?)`,
		string(data), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) Load() (models.ResolvedState, bool, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM resolved_state WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ResolvedState{}, false, nil
	}
	if err != nil {
		return models.ResolvedState{}, false, err
	}

	var state models.ResolvedState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return models.ResolvedState{}, false, err
	}
	return state, true, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
