package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

const (
	// CartKey is the key the cart is persisted under, namespaced per session.
	CartKey = "lilutecno_cart_v2"

	DefaultMaxPrice = 5000000
)

type Config struct {
	Port        string
	DBDSN       string
	LogFile     string
	KVBackend   string // sqlite | redis | memory
	RedisURL    string
	CatalogFile string

	MaxPrice    float64
	NotifyTTL   time.Duration
	NotifyMax   int
	SessionIdle time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "lilutecno.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./lilutecno.log"
	}
	backend := os.Getenv("KV_BACKEND")
	if backend == "" {
		backend = "sqlite"
	}
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	cfg := Config{
		Port:        port,
		DBDSN:       dsn,
		LogFile:     logFile,
		KVBackend:   backend,
		RedisURL:    redisURL,
		CatalogFile: os.Getenv("CATALOG_FILE"),
		MaxPrice:    floatEnv("MAX_PRICE", DefaultMaxPrice),
		NotifyTTL:   durationEnv("NOTIFY_TTL", 3*time.Second),
		NotifyMax:   intEnv("NOTIFY_MAX", 0),
		SessionIdle: durationEnv("SESSION_IDLE", 30*time.Minute),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s KV_BACKEND=%s MAX_PRICE=%.0f NOTIFY_TTL=%s SESSION_IDLE=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.KVBackend, cfg.MaxPrice, cfg.NotifyTTL, cfg.SessionIdle)
	return cfg
}

func floatEnv(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Printf("[warn] ignoring %s=%q: %v", key, v, err)
		return def
	}
	return f
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("[warn] ignoring %s=%q", key, v)
		return def
	}
	return n
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[warn] ignoring %s=%q", key, v)
		return def
	}
	return d
}
