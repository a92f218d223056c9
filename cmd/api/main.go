package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/londonslush-leads/internal/config"
	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/infra/database"
	"github.com/xavierca1/londonslush-leads/internal/infra/http/handlers"
	"github.com/xavierca1/londonslush-leads/internal/infra/http/middleware"
	"github.com/xavierca1/londonslush-leads/internal/infra/mail"
	"github.com/xavierca1/londonslush-leads/internal/logger"
	"github.com/xavierca1/londonslush-leads/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %+v\n", err)
		os.Exit(1)
	}

	zl := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zl.Sync()
	log := logger.NewZapAdapter(zl)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("server stopped with error", nil)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Storage (both optional; leads still go out by mail and sync without them)
	db := openDatabase(ctx, cfg, log)
	if db != nil {
		defer db.Close()
	}
	rdb := openRedis(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	var repo entity.LeadRepositoryInterface
	if db != nil {
		repo = database.NewLeadRepository(db)
	}

	// 2. Sync sinks and dispatcher
	bg := &usecase.Background{}
	sinks, sinkStatus := buildSinks(cfg, rdb, log)
	syncUC := usecase.NewSyncLeadUseCase(sinks, cfg.SyncTimeout, middleware.SinkMetrics{}, bg, log)

	// 3. Notification
	var notifier usecase.LeadNotifier
	if cfg.MailEnabled() {
		notifier = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, cfg.NotifyTo)
	} else {
		log.Warn("MAIL_HOST not set, lead notifications disabled", nil)
	}

	captureUC := usecase.NewCaptureLeadUseCase(repo, notifier, syncUC, bg, log)

	// 4. HTTP
	leadHandler := handlers.NewLeadHandler(captureUC, log)
	defer leadHandler.Close()

	router := newRouter(routerDeps{
		Lead:           leadHandler,
		ThankYou:       handlers.NewThankYouHandler(log),
		Export:         handlers.NewExportHandler(repo, log),
		AdminLeads:     handlers.NewAdminLeadsHandler(repo, log),
		Health:         handlers.NewHealthHandler(db, rdb, sinkStatus),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("🔥 lead service listening", map[string]interface{}{"port": cfg.Port, "sinks": len(sinks)})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return errors.Wrap(err, "listen")
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", map[string]interface{}{"timeout": cfg.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown incomplete", nil)
	}
	if err := bg.Wait(shutdownCtx); err != nil {
		log.WithError(err).Warn("background sync/notification jobs abandoned", nil)
	}
	return nil
}

func openDatabase(ctx context.Context, cfg *config.Config, log logger.Logger) *sql.DB {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, leads will not be stored", nil)
		return nil
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Error("❌ database unavailable, continuing without storage", nil)
		return nil
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.WithError(err).Error("❌ could not prepare leads table", nil)
	}
	return db
}

func openRedis(ctx context.Context, cfg *config.Config, log logger.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("invalid REDIS_URL, using in-process token cache", nil)
		return nil
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).Warn("redis unreachable, using in-process token cache", nil)
		rdb.Close()
		return nil
	}
	return rdb
}
