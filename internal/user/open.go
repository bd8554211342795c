package user

import (
	"context"
	"fmt"

	"github.com/redmonkez12/user-auth-api/internal/config"
	"github.com/redmonkez12/user-auth-api/internal/database"
)

// CloseFunc releases the connection behind a Store.
type CloseFunc func(ctx context.Context) error

// OpenStore connects the backend named by cfg.Driver, ensures its indexes,
// and returns the store with a function that closes the connection.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (Store, CloseFunc, error) {
	var (
		store   Store
		closeFn CloseFunc
	)

	switch cfg.Driver {
	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		store = NewMongoStore(client.Database(cfg.Mongo.Database))
		closeFn = client.Disconnect
	case config.DriverPostgres:
		db, err := database.OpenPostgres(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		store = NewBunStore(db)
		closeFn = func(context.Context) error { return db.Close() }
	case config.DriverMemory:
		store = NewMemoryStore()
		closeFn = func(context.Context) error { return nil }
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		_ = closeFn(context.Background())
		return nil, nil, err
	}

	return store, closeFn, nil
}
