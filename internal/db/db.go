package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"admindash/internal/config"
	"admindash/internal/model"
)

// Open connects to the database selected by cfg.DBDriver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return NewSQLite(cfg.SQLitePath, cfg.DBLog)
	default:
		return NewMySQL(cfg.MySQLDSN, cfg.DBLog)
	}
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string, logMode bool) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig(logMode))
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// NewSQLite opens a SQLite database at path. ":memory:" and "file:" DSNs are
// passed through untouched.
func NewSQLite(path string, logMode bool) (*gorm.DB, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig(logMode))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	// a single connection keeps in-memory databases shared across queries
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates or updates the admins and customers tables and their unique indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Admin{}, &model.Customer{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func gormConfig(logMode bool) *gorm.Config {
	gormLogger := logger.Default
	if !logMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}
	return &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}
}
