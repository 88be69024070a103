package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	// The display only ever shows the last five games.
	historyCap = 5

	historyDateLayout = "02 Jan 2006, 03:04 PM"
)

// HistoryRecord is an immutable snapshot of one completed session.
type HistoryRecord struct {
	Category Category `json:"category"`
	Score    int      `json:"score"`
	Total    int      `json:"total"`
	Duration int      `json:"duration"`
	Date     string   `json:"date"`
}

// HistoryStore persists the capped list of completed games. It is the only
// durable state the process keeps.
type HistoryStore struct {
	db *sql.DB
}

// openHistory opens or creates the sqlite database at path and applies the
// schema.
func openHistory(path string) (*HistoryStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	store := &HistoryStore{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()

		return nil, err
	}

	return store, nil
}

func (s *HistoryStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY,
		category TEXT NOT NULL,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		date TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("migrating history database: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Append durably stores a record, evicting the oldest entries beyond the
// cap. Insert and eviction share one transaction, so a crash mid-write never
// loses rows committed by earlier appends.
func (s *HistoryStore) Append(record HistoryRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("appending history record: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(
		`INSERT INTO history (category, score, total, duration, date) VALUES (?, ?, ?, ?, ?)`,
		record.Category, record.Score, record.Total, record.Duration, record.Date,
	)
	if err != nil {
		return fmt.Errorf("appending history record: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)`,
		historyCap,
	)
	if err != nil {
		return fmt.Errorf("evicting history records: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("appending history record: %w", err)
	}

	return nil
}

// List returns the stored records, most recent first.
func (s *HistoryStore) List() ([]HistoryRecord, error) {
	rows, err := s.db.Query(
		`SELECT category, score, total, duration, date FROM history ORDER BY id DESC LIMIT ?`,
		historyCap,
	)
	if err != nil {
		return nil, fmt.Errorf("listing history records: %w", err)
	}
	defer rows.Close()

	records := make([]HistoryRecord, 0, historyCap)
	for rows.Next() {
		var record HistoryRecord
		if err := rows.Scan(&record.Category, &record.Score, &record.Total, &record.Duration, &record.Date); err != nil {
			return nil, fmt.Errorf("listing history records: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing history records: %w", err)
	}

	return records, nil
}
