package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/dftlabs/refengine/internal/config"
	"github.com/dftlabs/refengine/internal/handlers"
	"github.com/dftlabs/refengine/internal/pg"
	"github.com/dftlabs/refengine/internal/repo"
	"github.com/dftlabs/refengine/internal/scheduler"
	"github.com/dftlabs/refengine/internal/service"
	"github.com/dftlabs/refengine/internal/worker"
	"github.com/dftlabs/refengine/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg   *config.Config
	api   *handlers.Handlers
	srv   *service.Services
	repo  *repo.Repositories
	work  *worker.Worker
	sched *scheduler.Scheduler

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
	conn := pg.New(pool)
	locks := pg.NewAdvisoryLocker(pool)
	clock := clockwork.NewRealClock()

	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(a.repo, txManager, clock)
	a.api = handlers.New(conn, a.repo.Jobs)

	workerID := fmt.Sprintf("refengine-%s", uuid.NewString()[:8])
	provider := worker.NewConfigProvider(a.repo.Policies)
	a.work = worker.New(workerID, a.repo.Jobs, a.repo.Users, a.srv.Levels, a.srv.Bonus, locks, provider, clock)
	a.sched = scheduler.New(a.srv.Mining, provider, clock,
		time.Duration(cfg.SchedulerPollSec)*time.Second)

	if cfg.Once {
		return a.runOnce(ctx, provider, clock)
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start ops http server: %w", err)
	}
	a.startWorker(ctx)
	a.startScheduler(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully", zap.String("workerID", workerID))
	return nil
}

// runOnce performs one worker pass and one scheduler tick, then returns.
func (a *Application) runOnce(ctx context.Context, provider *worker.ConfigProvider, clock clockwork.Clock) error {
	if err := provider.Reload(ctx); err != nil {
		zap.L().Warn("using default worker config", zap.Error(err))
	}
	if err := a.work.RunOnce(ctx); err != nil {
		return fmt.Errorf("worker pass failed: %w", err)
	}
	if err := a.sched.Tick(ctx, clock.Now()); err != nil {
		return fmt.Errorf("scheduler tick failed: %w", err)
	}
	zap.L().Info("single pass finished")
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

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.OpsAddress,
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
		zap.L().Info("starting ops http server", zap.String("addr", a.cfg.OpsAddress))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("ops http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startWorker(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.work.Run(ctx)
	}()
}

func (a *Application) startScheduler(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.sched.Run(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	if !a.ready {
		return nil
	}

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

	return appErr
}
