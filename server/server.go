package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sharefm/config"
	"sharefm/core/draw"
	"sharefm/core/library"
	"sharefm/core/session"
	"sharefm/db"
	"sharefm/logger"
	"sharefm/repository"
	"sharefm/scheduler"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
	})

	entries, sessions := buildStores(cfg)

	splitter := library.NewSplitter(cfg.ArtistDelimiters, cfg.ArtistExclusions, cfg.ExclusionIgnoreCase)
	meta := library.NewMetadataReader(splitter)
	gate := library.NewGate()
	reconciler := library.NewReconciler(entries, meta, gate, cfg.LibraryRoot)
	sessionManager := session.NewManager(sessions, entries)
	selector := draw.NewSelector(entries, sessionManager)

	handler := NewAPIHandler(cfg, entries, sessionManager, selector, reconciler, gate)

	// Startup housekeeping: clear leftovers and bring the catalog current.
	if _, err := sessionManager.SweepExpired(); err != nil {
		logger.Warn("initial session sweep failed", logger.ErrorField(err))
	}
	if _, err := reconciler.Reconcile(); err != nil {
		logger.Error("initial library scan failed", logger.ErrorField(err))
	}

	sched := scheduler.New()
	sched.Add("session-sweep", time.Duration(cfg.DefaultExpires)*time.Second, func() {
		if _, err := sessionManager.SweepExpired(); err != nil {
			logger.Error("session sweep failed", logger.ErrorField(err))
		}
	})
	if cfg.ScanInterval > 0 {
		sched.Add("library-scan", time.Duration(cfg.ScanInterval)*time.Second, func() {
			if _, err := reconciler.Reconcile(); err != nil {
				logger.Error("periodic library scan failed", logger.ErrorField(err))
			}
		})
	}
	sched.Start()
	defer sched.Stop()

	if cfg.WatchLibrary {
		watcher, err := library.NewWatcher(cfg.LibraryRoot, func() {
			if _, err := reconciler.Reconcile(); err != nil {
				logger.Error("watch-triggered scan failed", logger.ErrorField(err))
			}
		})
		if err != nil {
			logger.Fatal("failed to create library watcher", logger.ErrorField(err))
		}
		if err := watcher.Start(); err != nil {
			logger.Fatal("failed to start library watcher", logger.ErrorField(err))
		}
		defer watcher.Stop()
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      handler.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", logger.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("server stopped")
}

// buildStores connects the configured backends and returns the catalog and
// session stores. MySQL is the default; the memory driver exists for
// development and tests, and sessions can optionally live in Redis.
func buildStores(cfg *config.Config) (repository.EntryRepository, repository.SessionRepository) {
	var entries repository.EntryRepository
	var sessions repository.SessionRepository

	switch cfg.StoreDriver {
	case config.StoreMemory:
		entries = repository.NewMemoryEntryRepository()
		sessions = repository.NewMemorySessionRepository()
	default:
		if err := db.ConnectDB(cfg); err != nil {
			logger.Fatal("failed to connect to database", logger.ErrorField(err))
		}
		if err := db.InitDB(); err != nil {
			logger.Fatal("failed to initialize database", logger.ErrorField(err))
		}
		if err := db.ConnectGormDB(cfg); err != nil {
			logger.Fatal("failed to connect to database with GORM", logger.ErrorField(err))
		}
		entries = repository.NewMySQLEntryRepository(db.DB)
		sessions = repository.NewGormSessionRepository(db.GormDB)
	}

	if cfg.SessionStore == config.SessionStoreRedis {
		if err := db.ConnectRedis(cfg); err != nil {
			logger.Fatal("failed to connect to Redis", logger.ErrorField(err))
		}
		sessions = repository.NewRedisSessionRepository(db.RedisClient)
		logger.Info("using Redis session store")
	}

	return entries, sessions
}
