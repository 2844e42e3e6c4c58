package db

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/stashlog/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// OpenMySQL connects to an existing MySQL database. The embedded migrations
// are SQLite flavoured, so the schema is reconciled with AutoMigrate instead.
func OpenMySQL(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("open mysql: empty dsn")
	}

	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	if err := database.AutoMigrate(&models.KVEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return database, nil
}
