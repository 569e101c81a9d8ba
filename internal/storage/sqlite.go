package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/BenjaminSRussell/ziphound/internal/types"
)

// SQLiteStore provides queryable storage of crawl history.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the crawl database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT UNIQUE NOT NULL,
		status_code INTEGER,
		link_count INTEGER,
		targets INTEGER,
		fetched_at TIMESTAMP,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_pages_url ON pages(url);
	CREATE INDEX IF NOT EXISTS idx_pages_status_code ON pages(status_code);

	CREATE TABLE IF NOT EXISTS targets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT UNIQUE NOT NULL,
		found_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_targets_url ON targets(url);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SavePage upserts a page record.
func (s *SQLiteStore) SavePage(record types.PageRecord) error {
	query := `
		INSERT OR REPLACE INTO pages
		(url, status_code, link_count, targets, fetched_at, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		record.URL,
		record.StatusCode,
		record.LinkCount,
		record.Targets,
		record.FetchedAt,
		record.Error,
	)
	return err
}

// SaveTargets inserts target URLs, ignoring duplicates from previous
// runs.
func (s *SQLiteStore) SaveTargets(targets []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO targets (url) VALUES (?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range targets {
		if _, err := stmt.Exec(t); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadTargets returns all stored target URLs in lexicographic order.
func (s *SQLiteStore) LoadTargets() ([]string, error) {
	rows, err := s.db.Query("SELECT url FROM targets ORDER BY url")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := make([]string, 0)
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		targets = append(targets, u)
	}
	return targets, rows.Err()
}

// Summary returns page counts by outcome.
func (s *SQLiteStore) Summary() (visited, failed, targets int, err error) {
	if err = s.db.QueryRow("SELECT COUNT(*) FROM pages WHERE error IS NULL OR error = ''").Scan(&visited); err != nil {
		return 0, 0, 0, err
	}
	if err = s.db.QueryRow("SELECT COUNT(*) FROM pages WHERE error IS NOT NULL AND error != ''").Scan(&failed); err != nil {
		return 0, 0, 0, err
	}
	if err = s.db.QueryRow("SELECT COUNT(*) FROM targets").Scan(&targets); err != nil {
		return 0, 0, 0, err
	}
	return visited, failed, targets, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
