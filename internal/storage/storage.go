// Package storage persists crawl history: a JSONL log of every fetched
// page plus the collected target list, with an optional SQLite store
// for ad-hoc querying. The stored data is a record of the run, not a
// checkpoint; crawls always start from an empty in-memory frontier.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BenjaminSRussell/ziphound/internal/types"
)

const (
	pagesFile   = "pages.jsonl"
	targetsFile = "targets.txt"
)

// Storage manages JSONL-based storage of crawl data.
type Storage struct {
	dataDir string
	mu      sync.Mutex
	jsonl   *os.File
}

// New creates a storage instance rooted at dataDir.
func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	jsonlPath := filepath.Join(dataDir, pagesFile)
	file, err := os.OpenFile(jsonlPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open page log: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
		jsonl:   file,
	}, nil
}

// SavePage appends a page record to the JSONL log.
func (s *Storage) SavePage(record types.PageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal page record: %w", err)
	}

	if _, err := s.jsonl.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write page record: %w", err)
	}
	return nil
}

// SaveTargets writes the collected target list, one URL per line,
// replacing any previous list.
func (s *Storage) SaveTargets(targets []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dataDir, targetsFile)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create target list: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, t := range targets {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return fmt.Errorf("failed to write target: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush target list: %w", err)
	}
	return nil
}

// LoadTargets reads back a previously saved target list.
func (s *Storage) LoadTargets() ([]string, error) {
	path := filepath.Join(s.dataDir, targetsFile)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open target list: %w", err)
	}
	defer file.Close()

	targets := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			targets = append(targets, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read target list: %w", err)
	}
	return targets, nil
}

// LoadPages reads all page records from the JSONL log. Corrupt lines
// are skipped.
func (s *Storage) LoadPages() ([]types.PageRecord, error) {
	path := filepath.Join(s.dataDir, pagesFile)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.PageRecord{}, nil
		}
		return nil, fmt.Errorf("failed to open page log: %w", err)
	}
	defer file.Close()

	records := make([]types.PageRecord, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var record types.PageRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err == nil {
			records = append(records, record)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read page log: %w", err)
	}
	return records, nil
}

// Close closes the page log.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.jsonl != nil {
		return s.jsonl.Close()
	}
	return nil
}
