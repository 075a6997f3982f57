// Package history persists completed run records in SQLite.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/doeshing/gensuite/internal/domain"
	"github.com/doeshing/gensuite/internal/pkg/filesystem"
	"github.com/doeshing/gensuite/internal/ports"
)

// SQLiteStore persists run history in a SQLite database. When the
// database cannot be opened the store degrades to a no-op so a broken
// history file never blocks a session.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.gensuite/history/runs.db database.
func NewSQLiteStore() *SQLiteStore {
	return NewSQLiteStoreAt(filepath.Join(filesystem.UserHomeDir(), ".gensuite", "history", "runs.db"))
}

// NewSQLiteStoreAt opens a run database at an explicit path.
func NewSQLiteStoreAt(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		kind TEXT,
		magnitude INTEGER,
		capped INTEGER,
		elapsed_ms INTEGER,
		rate REAL,
		exported_to TEXT
	);`)
	return err
}

// Save inserts a new record, assigning an ID when missing.
func (s *SQLiteStore) Save(record domain.RunRecord) error {
	if s.db == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO runs
		(id, timestamp, kind, magnitude, capped, elapsed_ms, rate, exported_to)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(time.RFC3339Nano),
		string(record.Kind),
		record.Magnitude,
		boolToInt(record.Capped),
		record.ElapsedMS,
		record.Rate,
		record.ExportedTo,
	)
	return err
}

// List returns up to limit records, most recent first.
func (s *SQLiteStore) List(limit int) ([]domain.RunRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT id, timestamp, kind, magnitude, capped, elapsed_ms, rate, exported_to
		FROM runs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var ts, kind string
		var capped int
		if err := rows.Scan(&rec.ID, &ts, &kind, &rec.Magnitude, &capped, &rec.ElapsedMS, &rec.Rate, &rec.ExportedTo); err != nil {
			return nil, err
		}
		rec.Kind = domain.WorkloadKind(kind)
		rec.Capped = capped != 0
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.Timestamp = parsed
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear removes all records.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM runs`)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
