package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment. It is
// built once in main and passed to the components that need it; nothing else
// in the tree reads env vars directly.
type Config struct {
	Addr          string
	MongoURI      string
	MongoDatabase string
	SecretKey     string
	RedisHost     string
	RedisPassword string
	SessionTTL    time.Duration
	CORSOrigins   []string
}

// Load reads .env files (without overriding runtime-provided vars) and
// builds the Config, applying a documented default for every unset key.
func Load() Config {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := Config{
		Addr:          ":" + getEnv("PORT", "3000"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DB", "bookcase"),
		SecretKey:     getEnv("SECRET_KEY", "sekret"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
	}

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
