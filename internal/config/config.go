// internal/config/config.go
//
// Runtime configuration for the Logik server and terminal game.
// Values come from the process environment after an optional .env file
// has been loaded with godotenv (missing .env is not an error).
//
// Environment variables:
//   PORT=5175                 HTTP listen port
//   LOG_LEVEL=info            zerolog level
//   CLIENT_ORIGIN=...         allowed CORS origin (credentials enabled)
//   JWT_SECRET=...            HS256 key for session tokens
//   SESSION_TTL=24h           lifetime of a session token
//   HTTP_TIMEOUT=10s          per-request handler timeout
//   COOKIE_NAME=logik_session cookie carrying the session token
//   NODE_ENV=production       marks cookies Secure / SameSite=None

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds resolved settings.
type Config struct {
	Port         string
	LogLevel     string
	ClientOrigin string
	JWTSecret    string
	SessionTTL   time.Duration
	HTTPTimeout  time.Duration
	CookieName   string
	Production   bool
}

// Load reads .env (if present) and then the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv resolves settings from the current environment only.
func FromEnv() Config {
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		SessionTTL:   getDuration("SESSION_TTL", 24*time.Hour),
		HTTPTimeout:  getDuration("HTTP_TIMEOUT", 10*time.Second),
		CookieName:   getEnv("COOKIE_NAME", "logik_session"),
		Production:   os.Getenv("NODE_ENV") == "production",
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getDuration accepts Go durations ("90m") or plain seconds ("300").
func getDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
