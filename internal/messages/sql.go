package messages

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tessro/onair/internal/core"
	"github.com/tessro/onair/internal/logging"
)

// DefaultDBName is the name of the SQLite message database.
const DefaultDBName = "messages.db"

const schema = `CREATE TABLE IF NOT EXISTS messages (
	id          TEXT PRIMARY KEY,
	sender_name TEXT NOT NULL,
	city        TEXT NOT NULL,
	text        TEXT NOT NULL,
	photo       TEXT NOT NULL,
	created_at  INTEGER NOT NULL
)`

// rowid breaks ties between messages created in the same millisecond.
const newestFirst = `ORDER BY created_at DESC, rowid DESC`

// SQLStore keeps messages in a local SQLite database.
type SQLStore struct {
	db   *sqlx.DB
	opts Options
}

// NewSQLStore opens (creating if needed) the database at path.
func NewSQLStore(path string, opts Options) (*SQLStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open message database: %w", err)
	}
	// One writer; sqlite serializes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create message table: %w", err)
	}

	return &SQLStore{db: db, opts: opts.withDefaults()}, nil
}

func (s *SQLStore) List() ([]core.Message, error) {
	list := []core.Message{}
	err := s.db.Select(&list,
		`SELECT id, sender_name, city, text, photo, created_at FROM messages `+newestFirst+` LIMIT ?`,
		s.opts.Limit)
	if err != nil {
		logging.Warn("failed to read message database", logging.Err(err))
		return []core.Message{}, nil
	}
	return list, nil
}

func (s *SQLStore) Add(in Input) (core.Message, error) {
	m, err := newMessage(in, s.opts)
	if err != nil {
		return core.Message{}, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return core.Message{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`INSERT INTO messages (id, sender_name, city, text, photo, created_at)
		VALUES (:id, :sender_name, :city, :text, :photo, :created_at)`, m)
	if err != nil {
		return core.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM messages WHERE rowid NOT IN (
		SELECT rowid FROM messages `+newestFirst+` LIMIT ?)`, s.opts.Limit)
	if err != nil {
		return core.Message{}, fmt.Errorf("failed to trim messages: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Message{}, fmt.Errorf("failed to commit message: %w", err)
	}
	return m, nil
}

func (s *SQLStore) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM messages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
