package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	StoreBackend   string // memory | mysql
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	NLPBase        string
	NLPKey         string
	NLPTimeout     time.Duration
	CacheTTL       time.Duration
	LoadgenWorkers int
	SeedDemoData   bool
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ":9100"),
		StoreBackend:   env("STORE_BACKEND", "memory"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/staybook?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		NLPBase:        env("NLP_BASE_URL", "http://localhost:9200"),
		NLPKey:         env("NLP_API_KEY", ""),
		NLPTimeout:     time.Duration(atoi("NLP_TIMEOUT_SECONDS", 10)) * time.Second,
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 60)) * time.Second,
		LoadgenWorkers: atoi("LOADGEN_WORKERS", 8),
		SeedDemoData:   env("SEED_DEMO_DATA", "true") == "true",
	}
	if c.NLPKey == "" {
		log.Warn().Msg("NLP_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
