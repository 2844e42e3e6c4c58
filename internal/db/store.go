package db

import (
	"context"
	"fmt"
	"strings"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// KeyValueBackend is what every driver hands back to the services layer.
type KeyValueBackend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type StoreOptions struct {
	Driver     string
	SQLitePath string
	MySQLDSN   string
	Redis      RedisOptions
}

// OpenStore returns the configured backend and a function releasing it.
func OpenStore(options StoreOptions) (KeyValueBackend, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(options.Driver)) {
	case "", DriverSQLite:
		database, err := OpenSQLite(options.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		sqlDB, err := database.DB()
		if err != nil {
			return nil, noop, fmt.Errorf("open sql db: %w", err)
		}
		return NewKVRepository(database), sqlDB.Close, nil
	case DriverMySQL:
		database, err := OpenMySQL(options.MySQLDSN)
		if err != nil {
			return nil, noop, err
		}
		sqlDB, err := database.DB()
		if err != nil {
			return nil, noop, fmt.Errorf("open sql db: %w", err)
		}
		return NewKVRepository(database), sqlDB.Close, nil
	case DriverRedis:
		store, err := OpenRedis(options.Redis)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case DriverMemory:
		return NewMemoryStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", options.Driver)
	}
}
