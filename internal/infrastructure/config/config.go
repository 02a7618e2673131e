package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ListenAddr string
	Env        string
	LogLevel   string

	// Scheduling backend. In development this points at a local origin,
	// in production at the hosted backend.
	BackendURL  string
	HTTPTimeout time.Duration

	// Demo-mode submission latency.
	MockSubmitDelay time.Duration

	// Origins allowed to embed the widget.
	AllowedOrigins []string

	// Session cookie keys. Generated per process when unset, which means
	// sessions do not survive a restart.
	SessionHashKey  []byte
	SessionBlockKey []byte
}

func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	env := getenv("ENV", "development")

	backendDefault := "http://localhost:5000"
	if env == "production" {
		backendDefault = "https://smart-slot-backend.vercel.app"
	}

	cfg := Config{
		ListenAddr:     getenv("LISTEN_ADDR", ":8080"),
		Env:            env,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		BackendURL:     getenv("BACKEND_URL", backendDefault),
		AllowedOrigins: splitCSV(getenv("ALLOWED_ORIGINS", "*")),
	}

	timeoutSec, err := strconv.Atoi(getenv("HTTP_TIMEOUT_SECONDS", "10"))
	if err != nil || timeoutSec < 1 {
		return Config{}, fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS")
	}
	cfg.HTTPTimeout = time.Duration(timeoutSec) * time.Second

	delayMS, err := strconv.Atoi(getenv("MOCK_SUBMIT_DELAY_MS", "1500"))
	if err != nil || delayMS < 0 {
		return Config{}, fmt.Errorf("invalid MOCK_SUBMIT_DELAY_MS")
	}
	cfg.MockSubmitDelay = time.Duration(delayMS) * time.Millisecond

	cfg.SessionHashKey = keyFromEnv("SESSION_HASH_KEY", 64)
	cfg.SessionBlockKey = keyFromEnv("SESSION_BLOCK_KEY", 32)

	return cfg, nil
}

func keyFromEnv(name string, size int) []byte {
	if v := os.Getenv(name); v != "" {
		return []byte(v)
	}
	return securecookie.GenerateRandomKey(size)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
