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

	"github.com/wayfarer/wayfarer-go/internal/client"
	"github.com/wayfarer/wayfarer-go/internal/config"
	"github.com/wayfarer/wayfarer-go/internal/handler"
	"github.com/wayfarer/wayfarer-go/internal/middleware"
	"github.com/wayfarer/wayfarer-go/internal/repository"
	"github.com/wayfarer/wayfarer-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.BlogDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := repository.Migrate(db, repository.PostsSchema); err != nil {
		slog.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	postRepo := repository.NewPostRepository(db)
	profileClient := client.NewProfileClient(cfg.UserServiceURL)
	postService := service.NewPostService(postRepo, profileClient)
	postHandler := handler.NewPostHandler(postService)

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

	r.Get("/api/blogs", postHandler.HandleList)
	r.Get("/api/blogs/user/{userId}", postHandler.HandleListByUser)
	r.Get("/api/blogs/{id}", postHandler.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Post("/api/blogs", postHandler.HandleCreate)
		r.Put("/api/blogs/{id}", postHandler.HandleUpdate)
		r.Delete("/api/blogs/{id}", postHandler.HandleDelete)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.BlogPort,
		Handler: r,
	}

	go func() {
		slog.Info("blog service starting", "port", cfg.BlogPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down blog service")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("blog service stopped")
}
