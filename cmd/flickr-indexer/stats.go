package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"flickrindexer/pkg/config"
	"flickrindexer/pkg/store"
	"flickrindexer/pkg/ui"
)

var statsStatuses = []store.Status{
	store.StatusUnposted,
	store.StatusSuccess,
	store.StatusDownloadFailed,
	store.StatusImageTooLarge,
	store.StatusPostFailed,
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show row counts per collection and status",
		Long: `Show how many rows each configured collection holds, broken down by the
status the poster has recorded. Credentials are not needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, opts)
		},
	}
}

func runStats(cmd *cobra.Command, opts *options) error {
	path := opts.configFile
	if path == "" {
		path = config.DefaultPath
	}

	cfg := config.DefaultConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		return err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return err
	}
	if cfg.OutPath == "" {
		return errors.New("out_path is required")
	}

	headers := []string{"collection", "rows"}
	for _, s := range statsStatuses {
		headers = append(headers, s.String())
	}

	rows := make([][]string, 0, len(cfg.Queries))
	for _, col := range cfg.Queries {
		row, err := collectionStats(cmd, cfg.OutPath, col.Name)
		if err != nil {
			return fmt.Errorf("collection %q: %w", col.Name, err)
		}
		rows = append(rows, row)
	}

	ui.NewPrinter(cmd.OutOrStdout()).Table(headers, rows)
	return nil
}

func collectionStats(cmd *cobra.Command, outPath, name string) ([]string, error) {
	dbPath := filepath.Join(store.CollectionDir(outPath, name), store.DatabaseName)

	row := []string{name}
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		row = append(row, "not indexed")
		for range statsStatuses {
			row = append(row, "-")
		}
		return row, nil
	}

	db, err := store.Open(cmd.Context(), dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	counts, err := db.CountByStatus(cmd.Context())
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	row = append(row, ui.Count(total))
	for _, s := range statsStatuses {
		row = append(row, ui.Count(counts[s]))
	}
	return row, nil
}
