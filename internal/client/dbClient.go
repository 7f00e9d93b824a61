package client

import (
	"fmt"
	"strings"
	"lpg-marketplace/internal/config"
	"lpg-marketplace/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		return mysql.Open(cfg.URL), nil
	case "postgres":
		return postgres.Open(cfg.URL), nil
	case "sqlite":
		return sqlite.Open(sqliteDSN(cfg.URL)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN makes writers wait for the lock instead of failing with "database is locked".
// Transactions start IMMEDIATE so a settlement holds the write lock from its first read.
// Options already present in the URL win.
func sqliteDSN(url string) string {
	var opts []string
	if !strings.Contains(url, "_timeout") {
		opts = append(opts, "_busy_timeout=5000")
	}
	if !strings.Contains(url, "_txlock") {
		opts = append(opts, "_txlock=immediate")
	}
	if len(opts) == 0 {
		return url
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + strings.Join(opts, "&")
}

// InitDBClient opens the configured database and sizes its connection pool.
func InitDBClient(cfg config.Database) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Item{},
		&model.PaymentMethod{},
		&model.StockMovement{},
		&model.StockHistory{},
		&model.Cart{},
		&model.CartItem{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.Payment{},
		&model.DocumentSequence{},
	)
}
