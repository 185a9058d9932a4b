package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/yukikurage/twitter-clone-api/internal/config"
	"github.com/yukikurage/twitter-clone-api/internal/database"
	apierrors "github.com/yukikurage/twitter-clone-api/internal/errors"
	"github.com/yukikurage/twitter-clone-api/internal/events"
	"github.com/yukikurage/twitter-clone-api/internal/middleware"
	"github.com/yukikurage/twitter-clone-api/internal/server"
	"github.com/yukikurage/twitter-clone-api/internal/token"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := middleware.NewLogger(os.Stdout, cfg.IsProduction(), cfg.AppDebug)
	slog.SetDefault(logger)
	apierrors.SetDebug(cfg.AppDebug)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Token revocation needs Redis; without it logout only clears the session.
	var denylist token.Denylist = token.NopDenylist{}
	redisClient, err := token.NewRedisClient(ctx, cfg.RedisAddr())
	if err != nil {
		slog.Warn("redis unavailable, token revocation disabled", "error", err)
	} else {
		defer redisClient.Close()
		denylist = token.NewRedisDenylist(redisClient)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		nats, err := events.NewNATSPublisher(events.NATSConfig{
			URL:           cfg.NATSURL,
			MaxReconnects: 10,
			ReconnectWait: 2 * time.Second,
		})
		if err != nil {
			slog.Warn("nats unavailable, events disabled", "error", err)
		} else {
			defer nats.Close()
			publisher = nats
			slog.Info("nats publisher initialized", "url", cfg.NATSURL)
		}
	}

	store, err := server.NewSessionStore(cfg)
	if err != nil {
		slog.Error("failed to create session store", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := server.NewRouter(server.Dependencies{
		DB:           database.GetDB(),
		SessionStore: store,
		Tokens:       token.NewManager(cfg.JWTSecret, cfg.JWTTTL),
		Denylist:     denylist,
		Publisher:    publisher,
		Logger:       logger,
		Registry:     registry,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	if sqlDB, err := database.GetDB().DB(); err == nil {
		_ = sqlDB.Close()
	}

	slog.Info("server stopped")
}
