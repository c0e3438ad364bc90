package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"civicdesk/internal/directory"
	formshandler "civicdesk/internal/forms/handler"
	formsmetrics "civicdesk/internal/forms/metrics"
	formsservice "civicdesk/internal/forms/service"
	formsstore "civicdesk/internal/forms/store"
	intakehandler "civicdesk/internal/intake/handler"
	intakemetrics "civicdesk/internal/intake/metrics"
	intakeservice "civicdesk/internal/intake/service"
	intakestore "civicdesk/internal/intake/store"
	jwttoken "civicdesk/internal/jwt_token"
	"civicdesk/internal/platform/config"
	"civicdesk/internal/platform/httpserver"
	"civicdesk/internal/platform/logger"
	"civicdesk/internal/platform/metrics"
	"civicdesk/internal/platform/postgres"
	"civicdesk/internal/platform/redis"
	statshandler "civicdesk/internal/stats/handler"
	statsmetrics "civicdesk/internal/stats/metrics"
	statsservice "civicdesk/internal/stats/service"
	statsstore "civicdesk/internal/stats/store"
	"civicdesk/internal/throttle"
	httptransport "civicdesk/internal/transport/http"
	"civicdesk/pkg/platform/circuit"
)

const shutdownTimeout = 10 * time.Second

// stores groups the persistence for one backend choice.
type stores struct {
	forms     formsservice.Store
	intake    intakeservice.Store
	stats     statsservice.Store
	directory interface {
		directory.Recorder
		intakeservice.UserDirectory
		statsservice.UserCounter
	}
}

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := map[string]httptransport.HealthCheck{}

	var st stores
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		st = postgresStores(db)
		health["postgres"] = db.PingContext
		log.Info("using postgres stores")
	} else {
		st = memoryStores()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	var limiter throttle.Limiter = throttle.NewMemoryLimiter()
	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		limiter = throttle.NewFallbackLimiter(
			throttle.NewRedisLimiter(rdb.Client),
			throttle.NewMemoryLimiter(),
			circuit.New("redis-throttle", circuit.WithFailureThreshold(3)),
			log,
		)
		health["redis"] = rdb.Health
		log.Info("using redis submission throttle")
	}
	guard := throttle.New(limiter, log, cfg.Throttle).Guard

	forms := formsservice.New(st.forms,
		formsservice.WithLogger(log),
		formsservice.WithMetrics(formsmetrics.New()),
		formsservice.WithAnonymousPolicy(cfg.Anonymous),
	)
	intake := intakeservice.New(st.intake, st.directory,
		intakeservice.WithLogger(log),
		intakeservice.WithMetrics(intakemetrics.New()),
		intakeservice.WithAnonymousPolicy(cfg.Anonymous),
		intakeservice.WithResolutionPolicy(cfg.Resolution),
	)
	stats := statsservice.New(st.stats, st.directory,
		statsservice.WithLogger(log),
		statsservice.WithMetrics(statsmetrics.New()),
	)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:    log,
		Tokens:    jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer),
		Metrics:   metrics.New(),
		ActorSync: directory.Sync(st.directory, log),
		Health:    health,
		Modules: []httptransport.Registrar{
			formshandler.New(forms, log, guard),
			intakehandler.New(intake, log, guard),
			statshandler.New(stats, log),
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting civicdesk", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func postgresStores(db *sql.DB) stores {
	return stores{
		forms:     formsstore.NewPostgres(db),
		intake:    intakestore.NewPostgres(db),
		stats:     statsstore.NewPostgres(db),
		directory: directory.NewPostgres(db),
	}
}

func memoryStores() stores {
	intake := intakestore.NewInMemoryStore()
	return stores{
		forms:     formsstore.NewInMemoryStore(),
		intake:    intake,
		stats:     statsstore.NewInMemory(statsstore.IntakeSources(intake)),
		directory: directory.NewInMemory(),
	}
}
