package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/orderbackfill/internal/backfill"
	"github.com/GlebRadaev/orderbackfill/internal/config"
	"github.com/GlebRadaev/orderbackfill/internal/extractor"
	"github.com/GlebRadaev/orderbackfill/internal/handlers"
	"github.com/GlebRadaev/orderbackfill/internal/loader"
	"github.com/GlebRadaev/orderbackfill/internal/metrics"
	"github.com/GlebRadaev/orderbackfill/internal/orderapi"
	"github.com/GlebRadaev/orderbackfill/internal/pg"
	"github.com/GlebRadaev/orderbackfill/internal/ratebudget"
	"github.com/GlebRadaev/orderbackfill/internal/transform"
	"github.com/GlebRadaev/orderbackfill/pkg/clients"
	"github.com/GlebRadaev/orderbackfill/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

// Runner is the backfill run driven by the application.
type Runner interface {
	Run(ctx context.Context) (backfill.Summary, error)
	Progress() backfill.Progress
}

type Application struct {
	cfg     *config.Config
	pool    *pgxpool.Pool
	metrics *metrics.Metrics
	runner  Runner
	api     *handlers.Handlers

	group *errgroup.Group
	stop  context.CancelFunc
	ready bool
}

func New() *Application {
	return &Application{}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if cfg.Migrate {
		if err := pg.RunMigrations(ctx, pool, cfg.TargetTable); err != nil {
			zap.L().Error("migrations failed: ", zap.Error(err))
			pool.Close()
			return fmt.Errorf("can't run migrations: %w", err)
		}
	}
	txManager := pg.NewTXManager(pool)
	conn := pg.New(pool)

	a.cfg = cfg
	a.pool = pool
	a.metrics = metrics.New()

	client := orderapi.New(cfg, clients.NewHTTPClient())
	budget := ratebudget.New(client, cfg.CreditMargin, cfg.CreditPollInterval, ratebudget.WithMetrics(a.metrics))
	a.runner = backfill.New(
		backfill.Windows(time.Now(), cfg.BackfillDays, cfg.WindowDays),
		extractor.New(client, budget, cfg.PageLimit, a.metrics),
		transform.New(),
		loader.New(conn, txManager, cfg.TargetTable),
		backfill.WithStopOnError(cfg.StopOnError),
		backfill.WithMetrics(a.metrics),
		backfill.WithRateState(budget),
	)
	a.api = handlers.New(a.runner, a.metrics.Registry())

	a.run(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
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
		dbpool.Close()
		return nil, err
	}
	return dbpool, nil
}

// run starts the backfill and, when configured, the status server. Both stop
// once the backfill has finished.
func (a *Application) run(ctx context.Context) {
	ctx, stop := context.WithCancel(ctx)
	a.stop = stop
	a.group, ctx = errgroup.WithContext(ctx)

	a.group.Go(func() error {
		defer stop()
		return a.runBackfill(ctx)
	})

	if a.cfg.StatusAddress != "" {
		a.startHTTPServer(ctx)
	}
}

func (a *Application) runBackfill(ctx context.Context) error {
	summary, err := a.runner.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled) && !errors.Is(err, backfill.ErrWindowsFailed):
		zap.L().Info("backfill interrupted", zap.Int("windows_loaded", summary.Loaded))
		return nil
	default:
		return fmt.Errorf("backfill finished with errors: %w", err)
	}
}

func (a *Application) startHTTPServer(ctx context.Context) {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.StatusAddress,
		Handler: router,
	}

	a.group.Go(func() error {
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	a.group.Go(func() error {
		zap.L().Info("starting status server", zap.String("address", a.cfg.StatusAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("status server exited with error: %w", err)
		}
		return nil
	})
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	err := a.group.Wait()
	cancel()
	if a.stop != nil {
		a.stop()
	}
	if a.pool != nil {
		a.pool.Close()
	}

	if err != nil {
		zap.L().Error(err.Error())
		return err
	}
	return nil
}
