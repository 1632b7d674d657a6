package database

import (
	"fmt"
	"os"
	"path/filepath"

	"tas-go/internal/config"
	"tas-go/internal/tas"
)

// DatabaseFileName is the fixed name of the store file inside the data dir.
const DatabaseFileName = "tas.db"

// NewDatabaseFromConfig creates a Database implementation based on the
// database config type, ensuring the schema on open. For the sqlite type the
// data directory is created if absent; failure to create or open the store
// location is reported as tas.ErrStorageUnavailable.
func NewDatabaseFromConfig(cfg config.DatabaseConfig) (tas.Database, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data dir %s: %v: %w", cfg.DataDir, err, tas.ErrStorageUnavailable)
		}
		return openAndMigrate(filepath.Join(cfg.DataDir, DatabaseFileName))
	case "memory":
		return openAndMigrate(":memory:")
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}

func openAndMigrate(path string) (*SQLiteDatabase, error) {
	db, err := NewSQLiteDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %v: %w", path, err, tas.ErrStorageUnavailable)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return db, nil
}
