// Package storage selects the artifact store configured for the process.
package storage

import (
	"fmt"

	"github.com/kailas-cloud/recipedex/internal/config"
	"github.com/kailas-cloud/recipedex/internal/db"
	dbfs "github.com/kailas-cloud/recipedex/internal/db/fs"
	dbRedis "github.com/kailas-cloud/recipedex/internal/db/redis"
)

// Open creates the store named by cfg.Driver.
func Open(cfg config.StorageConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverFS, "":
		return dbfs.NewStore(cfg.Dir), nil
	case config.DriverValkey:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Addrs,
			Password:  cfg.Password,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("valkey store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
