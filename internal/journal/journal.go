// Package journal records applied commands in a SQLite database so an
// operator session can be reviewed after the process exits.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/teslashibe/go-atlas/pkg/brain"
	"github.com/teslashibe/go-atlas/pkg/protocol"
)

// Store is a SQLite-backed outcome journal. It is safe for concurrent use.
type Store struct {
	dbPath string

	db     *sql.DB
	dbOnce sync.Once
	dbErr  error

	closeOnce sync.Once
	closeErr  error
}

// NewStore creates a journal at dbPath. The database is opened lazily on
// first use.
func NewStore(dbPath string) *Store {
	return &Store{dbPath: dbPath}
}

func (s *Store) getDB() (*sql.DB, error) {
	s.dbOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "_journal_mode=WAL&_synchronous=NORMAL"))
		if err != nil {
			s.dbErr = fmt.Errorf("opening database: %w", err)
			return
		}
		// One writer keeps SQLite from returning SQLITE_BUSY under load.
		db.SetMaxOpenConns(1)

		if _, err = db.Exec(initSchemaSQL); err != nil {
			_ = db.Close()
			s.dbErr = fmt.Errorf("initializing schema: %w", err)
			return
		}
		s.db = db
	})
	return s.db, s.dbErr
}

// Record stores one outcome.
func (s *Store) Record(ctx context.Context, o protocol.OutcomeData) (err error) {
	db, err := s.getDB()
	if err != nil {
		return fmt.Errorf("getting connection: %w", err)
	}

	state, err := json.Marshal(o.State)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	var note sql.NullString
	if o.Result.Note != "" {
		note = sql.NullString{String: o.Result.Note, Valid: true}
	}

	stmt, err := db.PrepareContext(ctx, insertOutcomeSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	if _, err = stmt.ExecContext(ctx, o.ID, o.At.UTC(), o.Source, o.Command, string(o.Result.Action), o.Result.Success, note, string(state)); err != nil {
		return fmt.Errorf("inserting outcome: %w", err)
	}
	return nil
}

// Recent returns up to limit outcomes, newest first.
func (s *Store) Recent(ctx context.Context, limit int) (outcomes []protocol.OutcomeData, err error) {
	db, err := s.getDB()
	if err != nil {
		return nil, fmt.Errorf("getting connection: %w", err)
	}

	rows, err := db.QueryContext(ctx, selectRecentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var (
			o      protocol.OutcomeData
			action string
			note   sql.NullString
			state  string
		)
		if err = rows.Scan(&o.ID, &o.At, &o.Source, &o.Command, &action, &o.Result.Success, &note, &state); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		o.Result.Action = brain.Action(action)
		o.Result.Note = note.String
		if err = json.Unmarshal([]byte(state), &o.State); err != nil {
			return nil, fmt.Errorf("decoding state of %s: %w", o.ID, err)
		}
		outcomes = append(outcomes, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcomes: %w", err)
	}
	return outcomes, nil
}

// Count returns the number of stored outcomes.
func (s *Store) Count(ctx context.Context) (int, error) {
	db, err := s.getDB()
	if err != nil {
		return 0, fmt.Errorf("getting connection: %w", err)
	}

	var n int
	if err := db.QueryRowContext(ctx, countOutcomesSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting outcomes: %w", err)
	}
	return n, nil
}

// Close releases the database.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		if s.db != nil {
			s.closeErr = s.db.Close()
		}
	})
	return s.closeErr
}

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}
