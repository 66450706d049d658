// @title                       FinTrack API
// @version                     1.0
// @description                 Personal finance ledger with email/password accounts and bearer-token sessions.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
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

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/fintrack/finance-api/internal/api"
	"github.com/fintrack/finance-api/internal/api/handler"
	"github.com/fintrack/finance-api/internal/core/ports"
	"github.com/fintrack/finance-api/internal/core/service"
	"github.com/fintrack/finance-api/internal/infrastructure/db/memory"
	"github.com/fintrack/finance-api/internal/infrastructure/db/mongo"
	"github.com/fintrack/finance-api/internal/infrastructure/db/postgres"
	"github.com/fintrack/finance-api/internal/infrastructure/db/redis"
	"github.com/fintrack/finance-api/internal/infrastructure/security"
	"github.com/fintrack/finance-api/internal/pkg/config"
	"github.com/fintrack/finance-api/internal/pkg/telemetry"
	"github.com/fintrack/finance-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "finance-api: %v\n", err)
		os.Exit(1)
	}
}

// stores is the persistence selected by STORE_DRIVER.
type stores struct {
	users   ports.UserRepository
	entries ports.EntryRepository
	probe   handler.Pinger
	close   func(context.Context) error
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: cfg.OTel.ServiceName,
	})

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTel.ServiceName, cfg.OTel.Endpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	probes := []handler.Pinger{st.probe}

	var idem ports.IdempotencyStore = memory.NewIdempotencyStore()
	var rdbClose func() error
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		idem = redis.NewIdempotencyStore(rdb)
		probes = append(probes, redis.Pinger{Client: rdb})
		rdbClose = rdb.Close
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, idempotency keys are kept in process memory")
	}

	tokens, err := security.NewJWTService(security.TokenConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL,
		Issuer: cfg.JWT.Issuer,
	})
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		AuthService:    service.NewAuthService(st.users, security.NewBcryptHasher(security.DefaultCost), tokens, log),
		EntryService:   service.NewEntryService(st.entries, idem, log),
		Tokens:         tokens,
		Logger:         log,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Probes:         probes,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	if rdbClose != nil {
		if err := rdbClose(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}
	if err := st.close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("store close")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracer shutdown")
	}

	log.Info().Msg("server stopped")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		s, err := postgres.Connect(ctx, postgres.Config{
			URL:          cfg.PG.URL,
			MaxOpenConns: cfg.PG.MaxOpenConns,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("postgres connected, migrations applied")
		return &stores{
			users:   s.Users,
			entries: s.Entries,
			probe:   s,
			close:   func(context.Context) error { return s.Close() },
		}, nil

	case config.DriverMemory:
		s := memory.NewStore()
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return &stores{
			users:   s.Users,
			entries: s.Entries,
			probe:   s,
			close:   func(context.Context) error { return nil },
		}, nil

	default:
		s, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  cfg.OTel.ServiceName,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
		return &stores{
			users:   s.Users,
			entries: s.Entries,
			probe:   s,
			close:   s.Close,
		}, nil
	}
}
