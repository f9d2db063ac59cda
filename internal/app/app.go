package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/creditmeter/internal/config"
	"github.com/GlebRadaev/creditmeter/internal/handlers"
	"github.com/GlebRadaev/creditmeter/internal/metering"
	"github.com/GlebRadaev/creditmeter/internal/pg"
	"github.com/GlebRadaev/creditmeter/internal/repo"
	"github.com/GlebRadaev/creditmeter/internal/service"
	"github.com/GlebRadaev/creditmeter/pkg/auth"
	"github.com/GlebRadaev/creditmeter/pkg/clients"
	"github.com/GlebRadaev/creditmeter/pkg/logger"
)

const meteringLockTTL = time.Minute

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg   *config.Config
	api   *handlers.Handlers
	srv   *service.Services
	repo  *repo.Repositories
	meter *metering.Service
	pool  *pgxpool.Pool
	rdb   *redis.Client

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	opts, err := cfg.PricingOptions()
	if err != nil {
		return fmt.Errorf("invalid pricing config: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	locker, rdb := newLocker(cfg)
	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			zap.L().Error("redis ping failed: ", zap.Error(err))
			return fmt.Errorf("can't connect to redis: %w", err)
		}
	}

	conn := pg.New(pool)
	a.cfg = cfg
	a.pool = pool
	a.rdb = rdb
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(a.repo, txManager, opts)
	a.api = handlers.New(a.srv, auth.NewJWTService(cfg.JWTSecret))
	a.meter = metering.New(cfg, a.srv.UsageService, clients.NewHTTPClient(), locker)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startMetering(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully",
		zap.Int64("markup_bps", opts.MarkupBps),
		zap.String("cents_rounding", string(opts.CentsRounding)),
		zap.Bool("redis_locks", rdb != nil),
	)
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

// newLocker picks the metering lock. Without REDIS_ADDRESS locks are local to
// this process and the returned client is nil.
func newLocker(cfg *config.Config) (metering.Locker, *redis.Client) {
	if cfg.RedisAddress == "" {
		return metering.NewLocalLocker(), nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
	return metering.NewRedisLocker(rdb, uuid.NewString(), meteringLockTTL), rdb
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startMetering(ctx context.Context) {
	a.meter.Start(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-a.meter.Done()
	}()
}

func (a *Application) close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			zap.L().Warn("redis close failed", zap.Error(err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()
	a.close()

	return appErr
}
