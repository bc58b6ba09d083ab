// Package history persists completed analyses in a local SQLite database so
// past results survive restarts and can be re-rendered or exported.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"pminsight/internal/schema"

	_ "modernc.org/sqlite"
)

// DefaultCapacity is how many analyses are kept before the oldest are
// evicted.
const DefaultCapacity = 20

// ErrNotFound means no stored analysis matched.
var ErrNotFound = errors.New("history: entry not found")

// Section is one named block of a stored analysis.
type Section struct {
	Field   string   `json:"field"`
	Title   string   `json:"title"`
	Content string   `json:"content,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// Entry is a stored analysis.
type Entry struct {
	ID        string
	Product   string
	CreatedAt time.Time
	Degraded  bool
	Sections  []Section
}

// Store is a SQLite-backed analysis history. One entry per product: a new
// analysis of the same product replaces the old one.
type Store struct {
	db       *sql.DB
	mu       sync.Mutex
	capacity int
}

// Open initializes the history database at the given path, creating parent
// directories as needed.
func Open(path string, capacity int) (*Store, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, capacity: capacity}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		product TEXT NOT NULL UNIQUE,
		degraded INTEGER NOT NULL DEFAULT 0,
		sections_json TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Add stores an analysis. A previous entry for the same product is replaced;
// if the store is over capacity afterwards, the oldest entries are evicted.
func (s *Store) Add(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.Product == "" {
		return fmt.Errorf("history: product is required")
	}

	payload, err := json.Marshal(e.Sections)
	if err != nil {
		return fmt.Errorf("failed to encode sections: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO analyses (id, product, degraded, sections_json, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(product) DO UPDATE SET
			id = excluded.id,
			degraded = excluded.degraded,
			sections_json = excluded.sections_json,
			created_at = excluded.created_at`,
		e.ID, e.Product, boolToInt(e.Degraded), string(payload), e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to store analysis: %w", err)
	}

	_, err = tx.Exec(`
		DELETE FROM analyses WHERE id NOT IN (
			SELECT id FROM analyses ORDER BY created_at DESC LIMIT ?
		)`, s.capacity)
	if err != nil {
		return fmt.Errorf("failed to evict old analyses: %w", err)
	}

	return tx.Commit()
}

// List returns all stored entries, newest first, without section payloads.
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, product, degraded, created_at
		FROM analyses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var degraded int
		if err := rows.Scan(&e.ID, &e.Product, &degraded, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Degraded = degraded != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Load returns the stored analysis for a product, sections included.
func (s *Store) Load(product string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var e Entry
	var degraded int
	var payload string
	err := s.db.QueryRow(`
		SELECT id, product, degraded, sections_json, created_at
		FROM analyses WHERE product = ?`, product).
		Scan(&e.ID, &e.Product, &degraded, &payload, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	e.Degraded = degraded != 0
	if err := json.Unmarshal([]byte(payload), &e.Sections); err != nil {
		return Entry{}, fmt.Errorf("failed to decode sections: %w", err)
	}
	restoreTitles(e.Sections)
	return e, nil
}

// restoreTitles fills missing section titles from the contract the entry was
// written against. Entries from before the sixth field was renamed carry
// competitive_advantage and resolve through the legacy contract.
func restoreTitles(secs []Section) {
	names := make([]string, len(secs))
	for i, s := range secs {
		names[i] = s.Field
	}
	contract := schema.Detect(names)
	for i := range secs {
		if secs[i].Title != "" {
			continue
		}
		if f, ok := contract.Lookup(secs[i].Field); ok {
			secs[i].Title = f.Title
		}
	}
}

// Clear removes all stored analyses.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM analyses`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
