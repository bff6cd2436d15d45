package main

import (
	"github.com/jmoiron/sqlx"

	"github.com/halemd30/Bookmarks-server/internal/config"
	"github.com/halemd30/Bookmarks-server/internal/db"
)

// openMigrated opens the configured database and brings its schema up to date.
func openMigrated(cfg *config.Config) (*sqlx.DB, error) {
	database, err := db.New(cfg.DB.Driver, cfg.DB.DSN, db.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database, cfg.DB.Driver); err != nil {
		_ = database.Close()
		return nil, err
	}
	return database, nil
}
