package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/wapi/api/internal/config"
	"github.com/wapi/api/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case config.BackendSQLite:
		dialector = sqlite.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("store backend %q is not relational", cfg.StoreBackend)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger(cfg.GormLogLevel),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func newLogger(level string) logger.Interface {
	var lvl logger.LogLevel
	switch level {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	default:
		lvl = logger.Warn
	}
	return logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate creates the three word tables, which share one schema, and the
// seed run audit table.
func Migrate(db *gorm.DB) error {
	for _, table := range model.Tables {
		if err := db.Table(model.SQLTableName(table)).AutoMigrate(&model.Word{}); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", table, err)
		}
	}

	if err := db.AutoMigrate(&model.SeedRun{}); err != nil {
		return fmt.Errorf("failed to migrate seed runs: %w", err)
	}

	return nil
}
