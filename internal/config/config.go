package config

import (
	"os"
	"strconv"
	"time"

	"viewerhub/internal/logger"

	"github.com/joho/godotenv"
)

// Feed source kinds accepted by FEED_SOURCE.
const (
	FeedRedis     = "redis"
	FeedWebsocket = "websocket"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	LogLevel string
	LogJSON  bool

	// Accrual policy. BasePayoutRate is currency units per minute of active
	// watch time; ActiveWindow is the largest gap between two messages for a
	// viewer to still count as continuously present.
	BasePayoutRate float64
	ActiveWindow   time.Duration

	// Chat feed.
	FeedSource    string
	FeedChannel   string
	FeedWSURL     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// API limits
	APIRateLimit  int
	APIRateWindow time.Duration
}

// Load reads configuration from the environment (and .env if present).
// Missing required values are fatal; everything else has a default.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	basePayout := 1.0 // 1 currency unit per active minute
	if v := os.Getenv("BASE_PAYOUT_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			basePayout = f
		}
	}

	activeWindow := 300 * time.Second
	if v := os.Getenv("ACTIVE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			activeWindow = time.Duration(n) * time.Second
		}
	}

	feedSource := os.Getenv("FEED_SOURCE")
	if feedSource != FeedWebsocket {
		feedSource = FeedRedis
	}

	feedChannel := os.Getenv("FEED_CHANNEL")
	if feedChannel == "" {
		feedChannel = "chat:events"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	apiRateLimit := 120
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	return &Config{
		AppPort:        port,
		DatabaseURL:    dbURL,
		JWTSecret:      jwtSecret,
		LogLevel:       logLevel,
		LogJSON:        os.Getenv("LOG_JSON") == "true",
		BasePayoutRate: basePayout,
		ActiveWindow:   activeWindow,
		FeedSource:     feedSource,
		FeedChannel:    feedChannel,
		FeedWSURL:      os.Getenv("FEED_WS_URL"),
		RedisAddr:      redisAddr,
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		APIRateLimit:   apiRateLimit,
		APIRateWindow:  apiRateWindow,
	}
}
