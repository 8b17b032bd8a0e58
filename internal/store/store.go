// Package store is the relational backend of the Mission Control API.
// SQLite is the default; PostgreSQL is selected when a database URL is
// configured. Queries are written with ? placeholders and rebound for
// postgres.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

var nowFunc = time.Now

const (
	driverSQLite   = "sqlite3"
	driverPostgres = "pgx"
)

// Store wraps the relational database.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the database and runs migrations. When databaseURL is
// non-empty it selects PostgreSQL; otherwise SQLite at sqlitePath.
func Open(ctx context.Context, databaseURL, sqlitePath string) (*Store, error) {
	var (
		db     *sql.DB
		driver string
		err    error
	)

	if databaseURL != "" {
		driver = driverPostgres
		db, err = sql.Open("pgx", databaseURL)
	} else {
		driver = driverSQLite
		if dir := filepath.Dir(sqlitePath); dir != "." {
			if mkerr := os.MkdirAll(dir, 0755); mkerr != nil {
				return nil, fmt.Errorf("create database directory: %w", mkerr)
			}
		}
		db, err = sql.Open("sqlite3", sqlitePath+"?_foreign_keys=on")
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if s.driver != driverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

func (s *Store) migrate(ctx context.Context) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.driver == driverPostgres {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id ` + serial + `,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '` + model.DefaultColor + `',
			is_fridge BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id ` + serial + `,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'backlog',
			priority TEXT NOT NULL DEFAULT 'medium',
			project_id BIGINT NOT NULL DEFAULT 1 REFERENCES projects(id),
			assigned_to TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			due_date TIMESTAMP,
			notion_link TEXT NOT NULL DEFAULT '',
			notion_page_id TEXT NOT NULL DEFAULT '',
			estimated_hours REAL,
			actual_hours REAL,
			randy_status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			completed_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id ` + serial + `,
			task_id BIGINT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			author TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS activity_log (
			id ` + serial + `,
			task_id BIGINT,
			action TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			performed_by TEXT NOT NULL DEFAULT 'sistema',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS randy_notifications (
			id ` + serial + `,
			task_id BIGINT,
			type TEXT NOT NULL,
			message TEXT NOT NULL,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS templates (
			id ` + serial + `,
			name TEXT NOT NULL,
			data TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_assigned ON tasks(assigned_to)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_task ON comments(task_id)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_task ON activity_log(task_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return s.seedDefaultProject(ctx)
}

// seedDefaultProject inserts the canonical "Geral" project (id 1) and, on
// postgres, realigns the id sequence past it.
func (s *Store) seedDefaultProject(ctx context.Context) error {
	p := model.DefaultProject(nowFunc())

	insert := `INSERT OR IGNORE INTO projects (id, name, description, color, is_fridge, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if s.driver == driverPostgres {
		insert = `INSERT INTO projects (id, name, description, color, is_fridge, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT (id) DO NOTHING`
	}
	if _, err := s.exec(ctx, insert, p.ID, p.Name, p.Description, p.Color, p.IsFridge, p.CreatedAt, p.UpdatedAt); err != nil {
		return err
	}

	if s.driver == driverPostgres {
		_, err := s.db.ExecContext(ctx,
			`SELECT setval(pg_get_serial_sequence('projects', 'id'), GREATEST((SELECT MAX(id) FROM projects), 1))`)
		return err
	}
	return nil
}
