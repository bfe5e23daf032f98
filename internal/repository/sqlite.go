package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"exam-tutor/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS exchanges (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	question    TEXT    NOT NULL,
	answer      TEXT    NOT NULL,
	subject     TEXT    NOT NULL DEFAULT '',
	exam_type   TEXT    NOT NULL DEFAULT '',
	timestamp   TEXT    NOT NULL,
	is_fallback INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_exchanges_subject ON exchanges(subject);
CREATE INDEX IF NOT EXISTS idx_exchanges_exam_type ON exchanges(exam_type);
`

// SQLiteStore persists the transcript in a single SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLiteStore opens (or creates) the database at path and applies the
// schema. Use ":memory:" for a throwaway store.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository: sqlite path must not be empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("repository: sqlite mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repository: sqlite open: %w", err)
	}
	// Pragmas are per connection and ":memory:" is per connection too.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("repository: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repository: sqlite schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repository: sqlite ping: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save inserts ex and returns it with its row id and timestamp.
func (s *SQLiteStore) Save(ctx context.Context, ex domain.Exchange) (domain.Exchange, error) {
	ex.Timestamp = s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO exchanges (question, answer, subject, exam_type, timestamp, is_fallback)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ex.Question, ex.Answer, ex.Subject, ex.ExamType,
		ex.Timestamp.Format(time.RFC3339Nano), ex.IsFallback,
	)
	if err != nil {
		return domain.Exchange{}, fmt.Errorf("repository: Save insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Exchange{}, fmt.Errorf("repository: Save last insert id: %w", err)
	}
	ex.ID = id
	return ex, nil
}

func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.Exchange, error) {
	return s.list(ctx, "ListAll", "", "")
}

func (s *SQLiteStore) ListBySubject(ctx context.Context, subject string) ([]domain.Exchange, error) {
	return s.list(ctx, "ListBySubject", "subject", subject)
}

func (s *SQLiteStore) ListByExamType(ctx context.Context, examType string) ([]domain.Exchange, error) {
	return s.list(ctx, "ListByExamType", "exam_type", examType)
}

// column is always one of the fixed names above, never user input.
func (s *SQLiteStore) list(ctx context.Context, op, column, value string) ([]domain.Exchange, error) {
	query := `SELECT id, question, answer, subject, exam_type, timestamp, is_fallback FROM exchanges`
	var args []any
	if column != "" {
		query += ` WHERE ` + column + ` = ?`
		args = append(args, value)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: %s query: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Exchange{}
	for rows.Next() {
		var (
			ex    domain.Exchange
			rawTS string
		)
		if err := rows.Scan(&ex.ID, &ex.Question, &ex.Answer, &ex.Subject, &ex.ExamType, &rawTS, &ex.IsFallback); err != nil {
			return nil, fmt.Errorf("repository: %s scan: %w", op, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, rawTS)
		if err != nil {
			return nil, fmt.Errorf("repository: %s parse timestamp: %w", op, err)
		}
		ex.Timestamp = ts
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: %s rows: %w", op, err)
	}
	return out, nil
}
