package task

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed storage for tasks.
//
// Writes are serialized through one lock; reads may run concurrently with
// each other.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dbPath and ensures the
// tasks table exists. The caller owns the returned store and must Close it.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &StorageError{Op: "open database", Err: err}
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, &StorageError{Op: "set WAL mode", Err: err}
	}

	if err := createTable(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug("task store opened", "path", dbPath)
	return &Store{db: db}, nil
}

func createTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT    NOT NULL,
			description TEXT,
			date        TEXT,
			time        TEXT,
			priority    INTEGER NOT NULL DEFAULT 1,
			has_alarm   INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return &StorageError{Op: "create table", Err: err}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Create validates t, inserts it and returns the assigned ID. Any ID set on
// t is ignored.
func (s *Store) Create(t Task) (int64, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.inTx("insert task", func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			INSERT INTO tasks (title, description, date, time, priority, has_alarm)
			VALUES (?, ?, ?, ?, ?, ?)
		`, t.Title, t.Description, nullable(t.Date), nullable(t.Time),
			int(t.Priority), boolToInt(t.HasAlarm))
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}

	log.Debug("task created", "id", id, "title", t.Title)
	return id, nil
}

// List returns all tasks in storage order. Use Sort for display order.
func (s *Store) List() ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, title, description, date, time, priority, has_alarm
		FROM tasks ORDER BY id ASC
	`)
	if err != nil {
		return nil, &StorageError{Op: "list tasks", Err: err}
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, &StorageError{Op: "scan task", Err: err}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list tasks", Err: err}
	}
	return tasks, nil
}

// Get returns a single task by ID.
func (s *Store) Get(id int64) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, title, description, date, time, priority, has_alarm
		FROM tasks WHERE id = ?
	`, id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, notFound(id)
		}
		return Task{}, &StorageError{Op: "get task", Err: err}
	}
	return t, nil
}

// Update overwrites every field of the task with the given ID. It never
// inserts: an unknown ID yields ErrNotFound and leaves the table unchanged.
func (s *Store) Update(id int64, t Task) error {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err := s.inTx("update task", func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE tasks
			SET title = ?, description = ?, date = ?, time = ?, priority = ?, has_alarm = ?
			WHERE id = ?
		`, t.Title, t.Description, nullable(t.Date), nullable(t.Time),
			int(t.Priority), boolToInt(t.HasAlarm), id)
		if err != nil {
			return err
		}
		n, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(id)
	}

	log.Debug("task updated", "id", id)
	return nil
}

// Delete removes a task by ID. Deleting an absent ID yields ErrNotFound.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err := s.inTx("delete task", func(tx *sql.Tx) error {
		result, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(id)
	}

	log.Debug("task deleted", "id", id)
	return nil
}

// inTx runs fn in a transaction and commits only if fn succeeds.
func (s *Store) inTx(op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &StorageError{Op: op, Err: err}
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return &StorageError{Op: op, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: op, Err: err}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (Task, error) {
	var t Task
	var description, date, tod sql.NullString
	var priority, hasAlarm int

	if err := row.Scan(&t.ID, &t.Title, &description, &date, &tod, &priority, &hasAlarm); err != nil {
		return Task{}, err
	}

	t.Description = description.String
	t.Date = date.String
	t.Time = tod.String
	t.Priority = Priority(priority)
	t.HasAlarm = hasAlarm != 0
	return t, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
