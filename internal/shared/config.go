package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	MongoURI string
	MongoDB  string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	RateLimitPerMinute int
	SeedWorkers        int
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:             env("APP_ENV", "prod"),
		HTTPAddr:           env("HTTP_ADDR", ":8080"),
		MetricsAddr:        env("METRICS_ADDR", ":9100"),
		MongoURI:           env("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            env("MONGO_DB", "proptrack"),
		RedisAddr:          env("REDIS_ADDR", "localhost:6379"),
		RedisPass:          env("REDIS_PASSWORD", ""),
		RedisDB:            atoi("REDIS_DB", 0),
		CacheTTL:           time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		S3Bucket:           env("S3_BUCKET", "proptrack-images"),
		S3Region:           env("S3_REGION", "eu-west-1"),
		S3Endpoint:         env("S3_ENDPOINT", ""),
		S3AccessKey:        env("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:        env("S3_SECRET_ACCESS_KEY", ""),
		RateLimitPerMinute: atoi("RATE_LIMIT_PER_MINUTE", 30),
		SeedWorkers:        atoi("SEED_WORKERS", 8),
	}
	if c.S3AccessKey == "" {
		log.Warn().Msg("S3_ACCESS_KEY_ID is empty; image uploads will fail")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
