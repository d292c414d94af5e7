package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
)

const devSecret = "dev-secret-change-in-production"

// Config holds the environment-driven configuration shared by all four
// services. Each binary reads the fields it needs.
type Config struct {
	Env string `env:"ENV" envDefault:"development"`

	AuthPort  string `env:"AUTH_SERVICE_PORT" envDefault:"3001"`
	BlogPort  string `env:"BLOG_SERVICE_PORT" envDefault:"3002"`
	UserPort  string `env:"USER_SERVICE_PORT" envDefault:"3003"`
	MediaPort string `env:"MEDIA_SERVICE_PORT" envDefault:"3004"`

	AuthDSN  string `env:"DATABASE_DSN_AUTH" envDefault:"root:password@tcp(127.0.0.1:3306)/wayfarer_auth?parseTime=true"`
	BlogDSN  string `env:"DATABASE_DSN_BLOG" envDefault:"root:password@tcp(127.0.0.1:3306)/wayfarer_blog?parseTime=true"`
	UserDSN  string `env:"DATABASE_DSN_USER" envDefault:"root:password@tcp(127.0.0.1:3306)/wayfarer_user?parseTime=true"`
	MediaDSN string `env:"DATABASE_DSN_MEDIA" envDefault:"root:password@tcp(127.0.0.1:3306)/wayfarer_media?parseTime=true"`

	// JWTSecret signs and verifies tokens across every service and must be
	// identical for all of them.
	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`

	UserServiceURL string `env:"USER_SERVICE_URL" envDefault:"http://localhost:3003"`
	BlogServiceURL string `env:"BLOG_SERVICE_URL" envDefault:"http://localhost:3002"`

	UploadDir string `env:"MEDIA_UPLOAD_DIR" envDefault:"uploads"`
	// MediaBaseURL overrides the scheme+host used to build public file
	// URLs. When empty, URLs are derived from the incoming request.
	MediaBaseURL string `env:"MEDIA_PUBLIC_BASE_URL"`
}

// Load parses configuration from the environment.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to parse environment", "error", err)
		os.Exit(1)
	}

	if cfg.Env == "production" && cfg.JWTSecret == devSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}
