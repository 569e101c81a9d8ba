package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/BenjaminSRussell/ziphound/internal/export"
	"github.com/BenjaminSRussell/ziphound/internal/storage"
)

var (
	exportDataDir string
	exportFormat  string
	exportOutput  string
	exportSQLite  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-export a previous crawl's target list",
	Long:  `Export target URLs collected by an earlier crawl from the data directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := loadTargets()
		if err != nil {
			return fmt.Errorf("failed to load targets: %w", err)
		}

		if err := export.Write(targets, exportFormat, exportOutput); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Printf("Exported %d targets to %s\n", len(targets), exportOutput)
		return nil
	},
}

func loadTargets() ([]string, error) {
	if exportSQLite {
		store, err := storage.NewSQLiteStore(filepath.Join(exportDataDir, "crawl.db"))
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadTargets()
	}

	store, err := storage.New(exportDataDir)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.LoadTargets()
}

func init() {
	exportCmd.Flags().StringVar(&exportDataDir, "data-dir", "./data", "Data storage directory")
	exportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Output format: txt/csv/json")
	exportCmd.Flags().StringVar(&exportOutput, "output", "targets.txt", "Output file path")
	exportCmd.Flags().BoolVar(&exportSQLite, "from-sqlite", false, "Read targets from the SQLite store")
}
