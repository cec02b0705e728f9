package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/qirion-cloud/qaoad/internal/backend"
	"github.com/qirion-cloud/qaoad/internal/config"
	"github.com/qirion-cloud/qaoad/internal/db"
	dbRedis "github.com/qirion-cloud/qaoad/internal/db/redis"
	"github.com/qirion-cloud/qaoad/internal/domain"
	logpkg "github.com/qirion-cloud/qaoad/internal/logger"
	"github.com/qirion-cloud/qaoad/internal/metrics"
	"github.com/qirion-cloud/qaoad/internal/repository/evalcache"
	chiTransport "github.com/qirion-cloud/qaoad/internal/transport/chi"
	"github.com/qirion-cloud/qaoad/internal/transport/provider"
	"github.com/qirion-cloud/qaoad/internal/usecase/evaluate"
	healthuc "github.com/qirion-cloud/qaoad/internal/usecase/health"
	"github.com/qirion-cloud/qaoad/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting qaoad API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("backend_driver", cfg.Backend.Driver),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Register evaluation metrics explicitly (no init())
	metrics.RegisterEvaluationMetrics()

	ctx := context.Background()

	// Build the configured execution backend
	exec, providerClient, err := buildBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create execution backend", zap.Error(err))
	}
	logger.Info("Execution backend ready", zap.String("kind", string(exec.Kind())))

	// Optional expectation cache store
	var store db.Store
	if cfg.Cache.Enabled {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store")
	}

	// Use case services
	svc := evaluate.New(exec, logger)

	var evaluator evaluate.Evaluator = svc
	if store != nil {
		evaluator = evalcache.New(
			svc, store, exec.Kind(),
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.EvaluationCacheTotal, logger,
		)
	}

	sweeper := evaluate.NewSweeper(evaluator, cfg.Backend.MaxParallel, logger)

	// Health service; nil deps skip the corresponding check
	var dbPinger healthuc.DBPinger
	if store != nil {
		dbPinger = store
	}
	var providerChecker healthuc.ProviderChecker
	if providerClient != nil {
		providerChecker = providerClient
	}
	healthSvc := healthuc.New(dbPinger, providerChecker)

	server := chiTransport.NewServer(
		evaluator, sweeper, healthSvc, exec.Kind(), cfg.Backend.Shots, logger,
	)

	handler := server.Router(cfg.Auth.APIKeys)
	handler = wideEventMiddleware(logger)(handler)
	handler = chiMiddleware.RequestID(handler)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildBackend creates the configured execution backend. The provider client
// is non-nil only for the remote backend; the health service reuses it.
func buildBackend(ctx context.Context, cfg config.Config, logger *zap.Logger) (evaluate.Executor, *provider.Client, error) {
	switch cfg.Backend.Driver {
	case "statevector":
		return backend.NewStatevector(logger), nil, nil
	case "sampler_local":
		return backend.NewSampler(cfg.Backend.Seed, logger), nil, nil
	case "sampler_remote":
		client := provider.NewClient(&provider.Config{
			BaseURL: cfg.Provider.BaseURL,
			Token:   cfg.Provider.Token,
			Hub:     cfg.Provider.Hub,
			Group:   cfg.Provider.Group,
			Project: cfg.Provider.Project,
			Timeout: time.Duration(cfg.Provider.TimeoutSec) * time.Second,
			Logger:  logger,
		})
		desc := domain.DeviceDescriptor{
			Token:   cfg.Provider.Token,
			Hub:     cfg.Provider.Hub,
			Group:   cfg.Provider.Group,
			Project: cfg.Provider.Project,
			Device:  cfg.Provider.Device,
		}
		b, err := backend.NewRemote(ctx, client, desc, logger)
		if err != nil {
			return nil, nil, err
		}
		return b, client, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend driver %q", cfg.Backend.Driver)
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
