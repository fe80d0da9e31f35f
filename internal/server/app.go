// Package server initializes and runs the backend: database and migrations,
// object storage, the event bus with its pipelines, the daily stats schedule
// and the public HTTP endpoint, with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tigerroots/collective/internal/events"
	"github.com/tigerroots/collective/internal/logging"
	"github.com/tigerroots/collective/internal/server/admin"
	"github.com/tigerroots/collective/internal/server/chain"
	"github.com/tigerroots/collective/internal/server/config"
	"github.com/tigerroots/collective/internal/server/counters"
	"github.com/tigerroots/collective/internal/server/httpapi"
	"github.com/tigerroots/collective/internal/server/identity"
	"github.com/tigerroots/collective/internal/server/media"
	"github.com/tigerroots/collective/internal/server/objstore"
	"github.com/tigerroots/collective/internal/server/repositories/repomanager"
	"github.com/tigerroots/collective/internal/server/statsjob"
	"github.com/tigerroots/collective/internal/server/verify"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	bus      *events.InProcBus
	api      *httpapi.Server
	statsJob *statsjob.Service
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := objstore.NewS3Store(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("object storage init error: %w", err)
	}

	idp := identity.NewProvider(db, rm, []byte(cfg.SecretKey))

	counterSvc := counters.NewService(db, rm)
	chainSvc := chain.NewService(db, rm)
	adminSvc := admin.NewService(db, rm, idp, counterSvc, logger)
	verifySvc := verify.NewService(db, rm, counterSvc, chainSvc, logger)
	mediaSvc := media.NewService(db, rm, store, logger,
		cfg.ThumbMaxDim, cfg.ThumbJPEGQuality, cfg.ThumbURLValidity)

	bus := events.NewInProcBus(logger)
	verifySvc.Register(bus)
	mediaSvc.Register(bus)

	statsJob, err := statsjob.NewService(db, rm, logger, cfg.StatsCronSpec, cfg.StatsTimezone)
	if err != nil {
		return nil, err
	}

	api := httpapi.NewServer(db, rm, idp, adminSvc, bus, logger)

	return &App{
		config:   cfg,
		logger:   logger,
		db:       db,
		bus:      bus,
		api:      api,
		statsJob: statsJob,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.api.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "http endpoint listening", "addr", app.config.EndpointAddrHTTP)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	if err := app.statsJob.Start(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.statsJob.Stop()
	app.bus.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	app.logger.Info(ctx, "app stopped")
}
