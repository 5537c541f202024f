package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/waw666waw666/reminder/pkg/logger"
	"github.com/waw666waw666/reminder/pkg/remind"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    id       TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    title    TEXT NOT NULL,
    content  TEXT NOT NULL,
    interval REAL NOT NULL
)`

// SQLStore keeps the task list in an SQLite database.
type SQLStore struct {
	db  *sql.DB
	log logger.Logger
}

// OpenSQLStore opens (creating if needed) the database at path. A file
// that is not a usable database is moved to path+".corrupt" and a fresh
// database takes its place.
func OpenSQLStore(path string, l logger.Logger) (*SQLStore, error) {
	if l == nil {
		l = logger.NewNopLogger()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	db, err := openSQLite(path)
	if err == nil {
		return &SQLStore{db: db, log: l}, nil
	}
	l.Error("task database %s is unusable, starting with no tasks: %v", path, err)
	if rerr := os.Rename(path, path+".corrupt"); rerr != nil {
		return nil, fmt.Errorf("failed to move aside %s: %w", path, rerr)
	}
	db, err = openSQLite(path)
	if err != nil {
		return nil, err
	}
	return &SQLStore{db: db, log: l}, nil
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open task database: %w", err)
	}
	// A single connection serializes writers; the daemon is the only one.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tasks table: %w", err)
	}
	return db, nil
}

// Load returns the tasks in their saved order. Unreadable rows are logged
// and yield an empty list, matching the file store.
func (s *SQLStore) Load(ctx context.Context) ([]remind.Task, error) {
	tasks, err := s.load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Error("failed to read task database, starting with no tasks: %v", err)
		return []remind.Task{}, nil
	}
	return tasks, nil
}

func (s *SQLStore) load(ctx context.Context) ([]remind.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, title, content, interval
        FROM tasks
        ORDER BY position ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []remind.Task{}
	for rows.Next() {
		var t remind.Task
		var id string
		if err := rows.Scan(&id, &t.Title, &t.Content, &t.Interval); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		t.ID = remind.ID(id)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}
	return tasks, nil
}

// Save replaces every row inside one transaction.
func (s *SQLStore) Save(ctx context.Context, tasks []remind.Task) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO tasks (id, position, title, content, interval)
        VALUES (?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err = stmt.ExecContext(ctx, string(t.ID), i, t.Title, t.Content, t.Interval); err != nil {
			return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tasks: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLStore)(nil)
