package main

import (
	"github.com/spf13/cobra"

	"github.com/halemd30/Bookmarks-server/internal/config"
	"github.com/halemd30/Bookmarks-server/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
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

			database, err := openMigrated(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			log.Info("migrations complete", logger.String("driver", cfg.DB.Driver))
			return nil
		},
	}
}
