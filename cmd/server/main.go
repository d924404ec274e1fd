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

	"github.com/go-chi/chi/v5"

	"campuspass/internal/platform/config"
	"campuspass/internal/platform/httpserver"
	"campuspass/internal/platform/logger"
	"campuspass/internal/platform/metrics"
	"campuspass/internal/platform/postgres"
	platformredis "campuspass/internal/platform/redis"
	"campuspass/pkg/platform/httputil"
	"campuspass/pkg/platform/middleware/metadata"
	request "campuspass/pkg/platform/middleware/request"
	"campuspass/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Server.IsProduction())
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := postgres.ApplySchema(ctx, db); err != nil {
			return err
		}
		log.Info("using postgres stores")
	} else {
		log.Warn("DATABASE_URL not set; using in-memory stores")
	}

	rc, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rc != nil {
		defer rc.Close()
		log.Info("using redis otp challenge store")
	}

	app, err := buildApp(cfg, log, db, rc)
	if err != nil {
		return err
	}
	defer app.Close()

	router := chi.NewRouter()
	httpMetrics := metrics.New()
	router.Use(request.RequestID)
	router.Use(request.Recovery(log))
	router.Use(requesttime.Middleware)
	router.Use(metadata.ClientMetadata)
	router.Use(request.Logger(log))
	router.Use(httpMetrics.Middleware)
	router.Get("/healthz", healthHandler(db, rc))
	router.Handle("/metrics", metrics.Handler())
	app.handler.Register(router)

	srv := httpserver.New(cfg.Server.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting campuspass", "addr", cfg.Server.Addr, "environment", cfg.Server.Environment)
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func healthHandler(db *sql.DB, rc *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				status["postgres"] = "unavailable"
				code = http.StatusServiceUnavailable
			}
		}
		if rc != nil {
			if err := rc.Health(ctx); err != nil {
				status["redis"] = "unavailable"
				code = http.StatusServiceUnavailable
			}
		}
		if code != http.StatusOK {
			status["status"] = "degraded"
		}
		httputil.WriteJSON(w, code, status)
	}
}
