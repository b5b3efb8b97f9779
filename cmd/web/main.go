package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/tkarvinen/liftpulse/internal/envstruct"
	"github.com/tkarvinen/liftpulse/internal/errors"
	"github.com/tkarvinen/liftpulse/internal/logging"
	"github.com/tkarvinen/liftpulse/internal/progress"
	"github.com/tkarvinen/liftpulse/internal/sqlite"
	"golang.org/x/sync/errgroup"
)

type application struct {
	logger          *slog.Logger
	sessionManager  *scs.SessionManager
	progressService *progress.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"LIFTPULSE_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"LIFTPULSE_SQLITE_URL" envDefault:"./liftpulse.sqlite3"`
	// ReadTimeoutSecs bounds how long a request body read may take.
	ReadTimeoutSecs int `env:"LIFTPULSE_READ_TIMEOUT_SECS" envDefault:"5"`
	// Debug lowers the log level to debug.
	Debug bool `env:"LIFTPULSE_DEBUG" envDefault:"false"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close db", slog.Any("error", err))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	app := application{
		logger:          logger,
		sessionManager:  initializeSessionManager(db),
		progressService: progress.NewService(db, logger),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return db.RunOptimizer(ctx)
	})
	g.Go(func() error {
		if err := app.configureAndStartServer(ctx, cfg.Addr, time.Duration(cfg.ReadTimeoutSecs)*time.Second); err != nil {
			return errors.Wrap(err, "start server")
		}
		return nil
	})

	if err = g.Wait(); err != nil {
		return errors.Wrap(err, "run")
	}
	return nil
}

func initializeSessionManager(db *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 12 * time.Hour                                              //nolint:mnd // half a day
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()

	level := slog.LevelInfo
	if debug, ok := os.LookupEnv("LIFTPULSE_DEBUG"); ok && debug == "true" {
		level = slog.LevelDebug
	}
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
