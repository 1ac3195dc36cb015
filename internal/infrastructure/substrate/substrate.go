// Package substrate opens the key-value backend selected by STORE_DRIVER.
package substrate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"crediario/internal/config"
	"crediario/internal/infrastructure/memory"
	"crediario/internal/infrastructure/mongo"
	"crediario/internal/infrastructure/mysql"
	"crediario/internal/infrastructure/postgres"
	"crediario/internal/kv"
)

// Open connects to the configured backend and prepares its schema. The
// returned close function releases the connection.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (kv.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		logger.Warn("using the in-memory store, data is lost on restart")
		return memory.NewStore(), func() {}, nil

	case config.DriverMySQL:
		db, err := mysql.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("opening mysql store: %w", err)
		}
		s := mysql.NewCollectionStore(db)
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrating mysql: %w", err)
		}
		logger.Info("mysql store ready", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.Name))
		return s, func() { db.Close() }, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}
		s := postgres.NewCollectionStore(pool)
		if err := s.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrating postgres: %w", err)
		}
		logger.Info("postgres store ready")
		return s, pool.Close, nil

	case config.DriverMongo:
		client, err := mongo.NewClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("opening mongo store: %w", err)
		}
		logger.Info("mongo store ready", zap.String("database", cfg.Mongo.Database))
		return mongo.NewCollectionStore(client, cfg.Mongo.Database), func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("mongo disconnect failed", zap.Error(err))
			}
		}, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
