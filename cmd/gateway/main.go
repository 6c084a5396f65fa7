package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/dadihq/dadi-gateway/internal/auth"
	"github.com/dadihq/dadi-gateway/internal/config"
	"github.com/dadihq/dadi-gateway/internal/gateway"
	"github.com/dadihq/dadi-gateway/internal/openai"
	"github.com/dadihq/dadi-gateway/internal/ratelimit"
	"github.com/dadihq/dadi-gateway/internal/store"
	"github.com/dadihq/dadi-gateway/internal/telemetry"
)

var version = "dev"

func main() {
	configDir := flag.String("config", "configs", "path to configuration directory")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	loader := config.NewLoader(*configDir, logger)
	if err := loader.Load(); err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := loader.Watch(); err != nil {
		logger.Warn("failed to start config watcher", "error", err)
	}

	cfg := loader.Config()

	if cfg.Auth.BypassForLocalDev {
		logger.Warn("auth bypass for local dev is ENABLED; do not run this in production")
	}

	// Connect to PostgreSQL
	dbPool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		logger.Warn("database not reachable (ideas and preferences will fail)", "error", err)
	} else {
		logger.Info("database connected")
	}

	// Connect to Redis
	var rdb *redis.Client
	if cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis not reachable (caching and rate limiting disabled)", "error", err)
			rdb = nil
		} else {
			logger.Info("redis connected")
		}
	}

	// Model backend
	chatService := gateway.NewOpenAIChatService(openai.New(cfg.OpenAI))

	// Stores
	ideaStore := store.NewPostgresIdeaStore(dbPool)
	prefStore := store.NewCachedPreferenceStore(store.NewPostgresPreferenceStore(dbPool), rdb)

	metrics := telemetry.NewMetrics()
	handler := gateway.NewHandler(chatService, prefStore, ideaStore, nil, metrics)

	// Identity gate
	extractor := auth.NewExtractor(func() bool {
		return loader.Config().Auth.BypassForLocalDev
	})
	policy := auth.NewPolicy(func() config.AuthConfig {
		return loader.Config().Auth
	})
	limiter := ratelimit.NewLimiter(rdb)

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)

	// Unauthenticated routes
	r.Get("/api/health", healthHandler)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(extractor, policy))
		r.Use(ratelimit.Middleware(limiter, func() config.RateLimitConfig {
			return loader.Config().RateLimit
		}))
		r.Post("/api/chat", handler.Chat)
		r.Get("/api/user", handler.UserInfo)
		r.Post("/api/ideas", handler.SubmitIdea)
		r.Get("/api/ideas", handler.ListIdeas)
		r.Delete("/api/ideas/{id}", handler.DeleteIdea)
		r.Get("/api/userprefs/chatmode", handler.GetChatMode)
		r.Put("/api/userprefs/chatmode", handler.SetChatMode)
		r.Post("/api/issues", handler.CreateIssue)
	})

	// Metrics server on its own port
	if cfg.Telemetry.MetricsPort > 0 {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			addr := fmt.Sprintf(":%d", cfg.Telemetry.MetricsPort)
			logger.Info("metrics server starting", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("gateway starting", "addr", addr, "version", version)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("gateway stopped")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"version": version,
	})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = generateRequestID()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := context.WithValue(r.Context(), requestIDKey, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type contextKey string

const requestIDKey contextKey = "request_id"

func generateRequestID() string {
	now := time.Now()
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("req_%d_%s", now.UnixMilli(), hex.EncodeToString(b))
}
