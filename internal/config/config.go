package config

import (
	"os"
	"strconv"
	"time"

	"snake_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	JWTSecret     string
	AllowedOrigin string

	// Логи
	LogLevel string
	LogJSON  bool

	// Game pacing and session lifetime
	TickInterval time.Duration
	SessionTTL   time.Duration

	// Rate limits
	APIRateLimit   int
	APIRateWindow  time.Duration
	GameRateLimit  int
	GameRateWindow time.Duration

	// Redis (опционально, для rate limiting)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// Nokia-authentic cadence: 200ms per move
	tickMs := 200
	if v := os.Getenv("TICK_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tickMs = n
		}
	}

	sessionTTLMin := 30
	if v := os.Getenv("SESSION_TTL_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sessionTTLMin = n
		}
	}

	apiRateLimit := 600 // polling clients tick 5x per second
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := 60
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = n
		}
	}

	gameRateLimit := 900 // ticks + direction changes per window
	if v := os.Getenv("GAME_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			gameRateLimit = n
		}
	}

	gameRateWindow := 60
	if v := os.Getenv("GAME_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			gameRateWindow = n
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:        port,
		JWTSecret:      jwtSecret,
		AllowedOrigin:  os.Getenv("ALLOWED_ORIGIN"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogJSON:        os.Getenv("LOG_JSON") == "true",
		TickInterval:   time.Duration(tickMs) * time.Millisecond,
		SessionTTL:     time.Duration(sessionTTLMin) * time.Minute,
		APIRateLimit:   apiRateLimit,
		APIRateWindow:  time.Duration(apiRateWindow) * time.Second,
		GameRateLimit:  gameRateLimit,
		GameRateWindow: time.Duration(gameRateWindow) * time.Second,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
	}
}
