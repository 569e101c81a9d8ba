// Package export writes collected target URLs to files in a few
// formats. The plain text format, one URL per line, is the crawl's
// primary output.
package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// WriteText writes targets one per line. Input order is preserved, so
// callers passing a sorted list get deterministic output.
func WriteText(targets []string, outputFile string) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, t := range targets {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return fmt.Errorf("failed to write target: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	return nil
}

// WriteCSV writes targets with a header row and an export timestamp.
func WriteCSV(targets []string, outputFile string) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"url", "exported_at"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	now := time.Now().Format(time.RFC3339)
	for _, t := range targets {
		if err := w.Write([]string{t, now}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}

// WriteJSON writes targets as a JSON array.
func WriteJSON(targets []string, outputFile string) error {
	data, err := json.MarshalIndent(targets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal targets: %w", err)
	}
	if err := os.WriteFile(outputFile, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}

// Write dispatches on format: "txt", "csv" or "json".
func Write(targets []string, format, outputFile string) error {
	switch format {
	case "txt":
		return WriteText(targets, outputFile)
	case "csv":
		return WriteCSV(targets, outputFile)
	case "json":
		return WriteJSON(targets, outputFile)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
