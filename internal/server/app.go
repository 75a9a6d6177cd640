// Package server initializes and runs the application: it loads
// configuration, connects to the database, applies migrations, builds the
// service layer and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"postboard/internal/logging"
	"postboard/internal/server/auth"
	"postboard/internal/server/config"
	"postboard/internal/server/httpapi"
	"postboard/internal/server/repositories/repomanager"
	"postboard/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	postService *services.PostService
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

	hasher := auth.NewHasher(cfg.HashIterations)
	tokens := auth.NewTokenService([]byte(cfg.SecretKey), cfg.TokenValidity)
	gate := auth.NewGate(tokens)

	us := services.NewUserService(db, rm, hasher, tokens, gate)
	ps := services.NewPostService(db, rm, tokens, gate)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		userService: us,
		postService: ps,
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
	router := httpapi.NewRouter(app.userService, app.postService, app.logger)
	s := httpapi.NewHTTPServer(app.config.Addr, app.config.CertFile, app.config.KeyFile, router, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
