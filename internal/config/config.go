package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Auth / security
	JWTSecret       string
	JWTIssuer       string
	SessionTokenTTL time.Duration // fixed validity window for session tokens
	BcryptCost      int

	// Infrastructure
	DBAddr         string
	DBDebug        bool
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RabbitURL      string
	RabbitExchange string

	// Email verification flow
	VerifyEmailBaseURL  string // must contain `token=`; the service appends the token
	VerifyEmailTokenTTL time.Duration
}

// Load reads configuration from the environment. A local .env file is
// optional; required values fail fast so the service never starts in a
// partially configured state.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional outside local dev
		log.Println("no .env file found, using system environment")
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}
	cfg.JWTIssuer = getEnv("JWT_ISSUER", "jobhive-auth")

	// Session tokens carry the platform's fixed 15-day validity window.
	ttl, err := getDuration("SESSION_TOKEN_TTL", 15*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTokenTTL = ttl

	cost, err := getInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	cfg.BcryptCost = cost

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" && cfg.Env != "dev" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}
	cfg.DBDebug = getEnv("DB_DEBUG", "") == "true"

	// Redis and RabbitMQ degrade to in-process fallbacks in dev; prod
	// requires the broker so verification mail actually goes out.
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	rdb, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = rdb

	cfg.RabbitURL = os.Getenv("RABBIT_URL")
	if cfg.RabbitURL == "" && cfg.Env != "dev" {
		return nil, fmt.Errorf("missing required env var: RABBIT_URL")
	}
	cfg.RabbitExchange = getEnv("RABBIT_EXCHANGE", "auth.events")

	cfg.VerifyEmailBaseURL = getEnv("VERIFY_EMAIL_BASE_URL", "http://localhost:3000/verify-email?token=")
	if !strings.Contains(cfg.VerifyEmailBaseURL, "token=") {
		return nil, fmt.Errorf("VERIFY_EMAIL_BASE_URL must contain `token=`")
	}

	vet, err := getDuration("VERIFY_EMAIL_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.VerifyEmailTokenTTL = vet

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
