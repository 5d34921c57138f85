// Package storage persists the content collection snapshot the search
// engine is fed with. Items are stored as JSON documents in a single sqlite
// table; this is deliberately not a search index - the engine rebuilds its
// in-memory index from the full collection on every call, and this store
// only keeps the raw items between imports.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/inkwellcms/searchlight/pkg/content"
	"github.com/inkwellcms/searchlight/pkg/log"
)

// Store is a sqlite-backed content collection store.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens (or creates) the content database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS content_items (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL DEFAULT '',
			data TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, logger: log.ForService("storage")}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveItems upserts a batch of content items in one transaction.
func (s *Store) SaveItems(items []content.Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				s.logger.Warnf("failed to rollback transaction: %v", err)
			}
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO content_items (id, type, data, updated_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			s.logger.Warnf("failed to close statement: %v", err)
		}
	}()

	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshaling item %s: %w", item.ID, err)
		}
		if _, err := stmt.Exec(item.ID, item.Type, string(data), item.UpdatedAt); err != nil {
			return fmt.Errorf("storing item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}

// ReplaceAll atomically replaces the whole collection with the given items.
// Used by file reimports, where deletions in the source file must be
// reflected in the snapshot.
func (s *Store) ReplaceAll(items []content.Item) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				s.logger.Warnf("failed to rollback transaction: %v", err)
			}
		}
	}()

	if _, err := tx.Exec("DELETE FROM content_items"); err != nil {
		return fmt.Errorf("clearing collection: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO content_items (id, type, data, updated_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			s.logger.Warnf("failed to close statement: %v", err)
		}
	}()

	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshaling item %s: %w", item.ID, err)
		}
		if _, err := stmt.Exec(item.ID, item.Type, string(data), item.UpdatedAt); err != nil {
			return fmt.Errorf("storing item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}

// LoadAll returns the full content collection in insertion (rowid) order.
// The returned slice is a fresh snapshot; callers may hand it to the search
// engine without further copying.
func (s *Store) LoadAll() ([]content.Item, error) {
	rows, err := s.db.Query("SELECT data FROM content_items ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Warnf("failed to close rows: %v", err)
		}
	}()

	var items []content.Item
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		var item content.Item
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			// One corrupt row should not hide the rest of the collection.
			s.logger.Warnf("skipping undecodable item: %v", err)
			continue
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	return items, nil
}

// DeleteItem removes one item by id. Unknown ids are not an error.
func (s *Store) DeleteItem(id string) error {
	if _, err := s.db.Exec("DELETE FROM content_items WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	return nil
}

// Stats summarizes the stored collection.
type Stats struct {
	TotalItems  int            `json:"total_items"`
	ItemsByType map[string]int `json:"items_by_type"`
}

// GetStats returns item counts, total and per content type.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{ItemsByType: make(map[string]int)}

	rows, err := s.db.Query("SELECT type, COUNT(*) FROM content_items GROUP BY type")
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Warnf("failed to close rows: %v", err)
		}
	}()

	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, fmt.Errorf("scanning stats: %w", err)
		}
		if typ == "" {
			typ = "unknown"
		}
		stats.ItemsByType[typ] = count
		stats.TotalItems += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stats: %w", err)
	}

	return stats, nil
}
