package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/halemd30/Bookmarks-server/internal/config"
	"github.com/halemd30/Bookmarks-server/internal/logger"
	"github.com/halemd30/Bookmarks-server/internal/store"
)

// seedFile is the layout of a fixture file:
//
//	bookmarks:
//	  - title: Go
//	    url: https://go.dev
//	    rating: 5
//	    description: The Go programming language
type seedFile struct {
	Bookmarks []map[string]any `yaml:"bookmarks"`
}

type seedResult struct {
	Inserted int
	Rejected int
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load bookmarks from a YAML fixture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			database, err := openMigrated(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			res, err := seed(cmd.Context(), f, store.NewBookmarkStore(database), log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d, rejected %d\n", res.Inserted, res.Rejected)
			return nil
		},
	}
}

// seed validates every entry in r the same way POST /api/bookmarks does and
// inserts the valid ones. Invalid entries are logged and skipped; a store
// failure aborts the run.
func seed(ctx context.Context, r io.Reader, bookmarks store.BookmarkStoreIface, log logger.Logger) (seedResult, error) {
	var file seedFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return seedResult{}, fmt.Errorf("decode fixtures: %w", err)
	}

	var res seedResult
	for i, entry := range file.Bookmarks {
		nb, err := store.ValidateNew(entry)
		if err != nil {
			log.Warn("skipping fixture", logger.Int("index", i), logger.String("reason", err.Error()))
			res.Rejected++
			continue
		}
		b, err := bookmarks.Create(ctx, nb)
		if err != nil {
			return res, fmt.Errorf("insert fixture %d: %w", i, err)
		}
		log.Debug("seeded bookmark", logger.String("id", b.ID))
		res.Inserted++
	}
	return res, nil
}
