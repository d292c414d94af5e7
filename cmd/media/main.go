package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/wayfarer/wayfarer-go/internal/config"
	"github.com/wayfarer/wayfarer-go/internal/handler"
	"github.com/wayfarer/wayfarer-go/internal/middleware"
	"github.com/wayfarer/wayfarer-go/internal/repository"
	"github.com/wayfarer/wayfarer-go/internal/service"
	"github.com/wayfarer/wayfarer-go/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.MediaDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := repository.Migrate(db, repository.MediaSchema); err != nil {
		slog.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		slog.Error("upload directory setup failed", "error", err)
		os.Exit(1)
	}

	mediaRepo := repository.NewMediaRepository(db)
	mediaService := service.NewMediaService(mediaRepo, store)
	mediaHandler := handler.NewMediaHandler(mediaService, store, cfg.MediaBaseURL)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/uploads/{file}", mediaHandler.HandleServe)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Post("/api/media/upload", mediaHandler.HandleUpload)
		r.Delete("/api/media/{id}", mediaHandler.HandleDelete)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.MediaPort,
		Handler: r,
	}

	go func() {
		slog.Info("media service starting", "port", cfg.MediaPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down media service")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("media service stopped")
}
