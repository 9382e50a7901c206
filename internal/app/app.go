package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockfn/config"
	"github.com/guttosm/stockfn/internal/api"
	"github.com/guttosm/stockfn/internal/logger"
	"github.com/guttosm/stockfn/internal/service"
	"github.com/guttosm/stockfn/internal/storage"
)

// OpenStore connects the record store selected by cfg.Store.Driver once and
// returns the repository with a cleanup function that releases the connection.
func OpenStore(ctx context.Context, cfg config.Config) (storage.StockRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, err := mongoOpener(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize mongo: %w", err)
		}
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Store.Collection)
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		return storage.NewMongoRepository(coll), cleanup, nil

	case config.DriverPostgres:
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		if err := MigratePostgres(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		cleanup := func() { _ = db.Close() }
		return storage.NewPostgresRepository(db), cleanup, nil

	case config.DriverMemory:
		logger.L().Warn().Msg("using in-memory stock store; data is lost on exit")
		return storage.NewMemoryRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Opens the record store once (OpenStore) and injects it downward.
//   - Initializes the stock service and HTTP handlers.
//   - Configures the Gin router with the stock routes.
//   - Registers health and readiness probes.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp(ctx context.Context, cfg config.Config) (*gin.Engine, func(), error) {
	repo, cleanup, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := service.NewStockService(repo)
	handler := api.NewHandler(svc)

	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout:     cfg.Server.RequestTimeout,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
	})

	api.NewHealthHandler(repo.Ping, cfg.Server.Region).Register(router)

	logger.L().Info().
		Str("driver", cfg.Store.Driver).
		Str("region", cfg.Server.Region).
		Msg("application initialized")

	return router, cleanup, nil
}
