package repos

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

const initSchema = `
  CREATE TABLE IF NOT EXISTS state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    document TEXT NOT NULL,
    updated_at TIMESTAMP
  );
`

// SQLiteStateRepo keeps the state document in a single row.
type SQLiteStateRepo struct {
	logger *log.Logger
	db     *sql.DB
}

func OpenSQLiteStateRepo(logger *log.Logger, path string) (*SQLiteStateRepo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("Error opening state database (%s): %w", path, err)
	}
	// sqlite only supports a single writer
	db.SetMaxOpenConns(1)

	repo, err := NewSQLiteStateRepo(logger, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func NewSQLiteStateRepo(logger *log.Logger, db *sql.DB) (*SQLiteStateRepo, error) {

	_, err := db.Exec(initSchema)
	if err != nil {
		return nil, fmt.Errorf("Error initialising state schema: %w", err)
	}

	return &SQLiteStateRepo{logger: logger, db: db}, nil
}

func (r *SQLiteStateRepo) Load() ([]byte, error) {
	row := r.db.QueryRow("SELECT document FROM state WHERE id = 1")
	var doc string
	err := row.Scan(&doc)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		} else {
			return nil, fmt.Errorf("Error reading state document: %w", err)
		}
	}
	return []byte(doc), nil
}

func (r *SQLiteStateRepo) Save(data []byte) error {
	_, err := r.db.Exec(`
    INSERT INTO state (id, document, updated_at)
    VALUES (1, $1, $2)
    ON CONFLICT(id) DO UPDATE SET
      document = excluded.document,
      updated_at = excluded.updated_at
  `, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("Error writing state document: %w", err)
	}
	r.logger.Debug("SQLiteStateRepo.Save", "bytes", len(data))
	return nil
}

func (r *SQLiteStateRepo) Close() error {
	return r.db.Close()
}
