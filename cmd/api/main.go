package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/resort/internal/config"
	"github.com/joshua-takyi/resort/internal/connect"
	"github.com/joshua-takyi/resort/internal/container"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	logger.Info("Starting resort API server", "environment", cfg.Environment)

	ctx := context.Background()

	cld, err := connect.NewCloudinary(cfg)
	if err != nil {
		logger.Error("Failed to connect to Cloudinary", "error", err)
		os.Exit(1)
	}
	if cld == nil {
		logger.Warn("Cloudinary is not configured, media links are stored as given")
	}

	supaClient, err := connect.NewSupabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to Supabase", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to Supabase successfully")

	mongoClient, err := connect.NewMongo(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to MongoDB successfully")

	mdb := models.MongodbNewRepo(mongoClient, cfg.MongoDBDatabase)
	if err := mdb.EnsureTourViewIndexes(ctx); err != nil {
		logger.Error("Failed to create tour view indexes", "error", err)
	}
	if err := mdb.EnsureAuditIndexes(ctx); err != nil {
		logger.Error("Failed to create audit indexes", "error", err)
	}

	verifier, err := container.NewVerifier(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to load token verification keys", "error", err)
		os.Exit(1)
	}

	stores := container.HostedStores(supaClient, mongoClient, cfg, logger)
	appContainer := container.NewContainer(cfg, logger, stores, verifier, cld)

	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	helpers.Close(verifier)
	if err := connect.DisconnectMongo(mongoClient); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func logLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
