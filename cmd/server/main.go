// @title        User Service API
// @version      1.0
// @description  Registration, login and profile lookup with blacklist screening.
// @BasePath     /api/v1
//
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/api"
	"github.com/99minutos/user-service/internal/api/handler"
	"github.com/99minutos/user-service/internal/core/ports"
	"github.com/99minutos/user-service/internal/core/service"
	"github.com/99minutos/user-service/internal/infrastructure/config"
	"github.com/99minutos/user-service/internal/infrastructure/db/memory"
	mongostore "github.com/99minutos/user-service/internal/infrastructure/db/mongo"
	pgstore "github.com/99minutos/user-service/internal/infrastructure/db/postgres"
	redisstore "github.com/99minutos/user-service/internal/infrastructure/db/redis"
	"github.com/99minutos/user-service/internal/infrastructure/eligibility"
	"github.com/99minutos/user-service/internal/infrastructure/security"
	"github.com/99minutos/user-service/pkg/logger"
)

const (
	serviceName     = "user-service"
	shutdownTimeout = 10 * time.Second
)

// userStore is a UserStore that can also be probed by /health/ready.
type userStore interface {
	ports.UserStore
	handler.Pinger
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	hasher, err := security.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := security.NewJWTService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		return err
	}

	health := map[string]handler.Pinger{"store": store}

	var gate ports.EligibilityGate = eligibility.NewClient(cfg.Eligibility.URL, cfg.Eligibility.Timeout, log)
	if cfg.Eligibility.URL == "" {
		log.Warn().Msg("ELIGIBILITY_URL is not set: every registration will fail closed")
	}
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()

		gate = redisstore.NewEligibilityCache(rdb, gate, cfg.Eligibility.CacheTTL, log)
		health["redis"] = handler.PingerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("eligibility cache enabled")
	}

	authService := service.NewAuthService(store, hasher, tokens, gate, log)

	e := api.NewRouter(api.Deps{
		AuthService: authService,
		Tokens:      tokens,
		Health:      health,
		Log:         log,
		BasePath:    cfg.BasePath,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("store", cfg.StoreDriver).Msg("http server listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	log.Info().Msg("http server stopped")
	return nil
}

// openStore connects the backend selected by STORE_DRIVER and prepares its
// schema. The returned func releases the connection.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (userStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("mongo disconnect failed")
			}
		}
		repo := mongostore.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo user store ready")
		return repo, closeFn, nil

	case config.DriverPostgres:
		pool, err := pgstore.Connect(ctx, pgstore.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, nil, err
		}
		if err := pgstore.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info().Msg("postgres user store ready")
		return pgstore.NewUserRepository(pool), pool.Close, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory user store: accounts are lost on restart")
		return memory.NewUserRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
