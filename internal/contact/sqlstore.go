package contact

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS inquiries (
	id TEXT PRIMARY KEY,
	received_at TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	project_type TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_inquiries_received_at ON inquiries(received_at);
`

// timeLayout is fixed width so received_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLStore persists inquiries in a SQLite database.
type SQLStore struct {
	db   *sql.DB
	path string
}

// OpenSQLStore opens (creating if needed) the database at path and ensures
// the schema exists. ":memory:" gives a private in-memory database.
func OpenSQLStore(ctx context.Context, path string) (*SQLStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store needs a database path")
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLStore) Path() string {
	return s.path
}

func (s *SQLStore) Save(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO inquiries (id, received_at, name, email, phone, project_type, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(),
		rec.ReceivedAt.UTC().Format(timeLayout),
		rec.Name, rec.Email, rec.Phone, string(rec.ProjectType), rec.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to insert inquiry %s: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, received_at, name, email, phone, project_type, message
		 FROM inquiries ORDER BY received_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var id, receivedAt, pt string
		if err := rows.Scan(&id, &receivedAt, &rec.Name, &rec.Email, &rec.Phone, &pt, &rec.Message); err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("inquiry has malformed id %q: %w", id, err)
		}
		if rec.ReceivedAt, err = time.Parse(timeLayout, receivedAt); err != nil {
			return nil, fmt.Errorf("inquiry %s has malformed timestamp: %w", id, err)
		}
		rec.ProjectType = ProjectType(pt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inquiries: %w", err)
	}
	return out, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
