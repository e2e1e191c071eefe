// Command portfolio serves the portfolio REST API. Configuration comes from
// the environment, optionally seeded by a .env file in the working directory.
package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	portfolio "github.com/goliatone/go-portfolio"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()

	module, err := portfolio.New(cfg)
	if err != nil {
		log.Fatalf("initialise portfolio: %v", err)
	}

	mux := http.NewServeMux()
	if err := module.Register(mux); err != nil {
		log.Fatalf("register routes: %v", err)
	}

	log.Printf("portfolio listening on %s (base path %s)", cfg.HTTP.Addr, cfg.HTTP.BasePath)
	if err := http.ListenAndServe(cfg.HTTP.Addr, mux); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

func loadConfig() portfolio.Config {
	cfg := portfolio.DefaultConfig()

	cfg.DefaultLocale = envOr("PORTFOLIO_DEFAULT_LOCALE", cfg.DefaultLocale)

	cfg.Storage.Driver = envOr("PORTFOLIO_DB_DRIVER", cfg.Storage.Driver)
	cfg.Storage.DSN = envOr("PORTFOLIO_DB_DSN", cfg.Storage.DSN)

	cfg.HTTP.Addr = envOr("PORTFOLIO_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.BasePath = envOr("PORTFOLIO_HTTP_BASE_PATH", cfg.HTTP.BasePath)

	cfg.Auth.AdminToken = envOr("PORTFOLIO_ADMIN_TOKEN", cfg.Auth.AdminToken)

	cfg.Logging.Level = envOr("PORTFOLIO_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = envOr("PORTFOLIO_LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.AddSource = envBool("PORTFOLIO_LOG_SOURCE", cfg.Logging.AddSource)

	cfg.Cache.Enabled = envBool("PORTFOLIO_CACHE_ENABLED", cfg.Cache.Enabled)

	if raw := strings.TrimSpace(os.Getenv("PORTFOLIO_UPLOAD_MAX_BYTES")); raw != "" {
		if limit, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.Uploads.MaxBytes = limit
		}
	}
	cfg.Uploads.ObjectStore.Endpoint = envOr("PORTFOLIO_S3_ENDPOINT", cfg.Uploads.ObjectStore.Endpoint)
	cfg.Uploads.ObjectStore.AccessKey = envOr("PORTFOLIO_S3_ACCESS_KEY", cfg.Uploads.ObjectStore.AccessKey)
	cfg.Uploads.ObjectStore.SecretKey = envOr("PORTFOLIO_S3_SECRET_KEY", cfg.Uploads.ObjectStore.SecretKey)
	cfg.Uploads.ObjectStore.Bucket = envOr("PORTFOLIO_S3_BUCKET", cfg.Uploads.ObjectStore.Bucket)
	cfg.Uploads.ObjectStore.PublicBaseURL = envOr("PORTFOLIO_S3_PUBLIC_URL", cfg.Uploads.ObjectStore.PublicBaseURL)
	cfg.Uploads.ObjectStore.UseSSL = envBool("PORTFOLIO_S3_USE_SSL", cfg.Uploads.ObjectStore.UseSSL)

	return cfg
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
