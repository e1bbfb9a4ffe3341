package config

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// DefaultJWTSecret is only good for local development.
const DefaultJWTSecret = "not-so-secret-now-is-it?"

var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set to a non-default value in production")

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	PublicBaseURL   string
}

// Enabled reports whether enough of the R2 settings are present to presign uploads.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != ""
}

type Config struct {
	DB_URL      string
	Port        string
	JWTSecret   string
	JWTTTL      time.Duration
	Environment string
	LogLevel    string
	LogFormat   string
	CorsConfig  cors.Options

	AuthRateLimit int
	AuthRateBurst int

	UserCacheSize int
	UserCacheTTL  time.Duration

	R2 R2Config
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate rejects settings a production server must not start with.
func (c Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if secret := strings.TrimSpace(c.JWTSecret); secret == "" || secret == DefaultJWTSecret {
		return ErrInsecureJWTSecret
	}
	return nil
}

// Load reads the env file named by ENV_FILE (default .env) and builds the config.
// A missing env file is not an error; process environment still applies.
func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	environment := getEnv("ENV", "development")

	return Config{
		DB_URL:        getEnv("DB_URL", ""),
		Port:          getEnv("PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:        getDuration("JWT_TTL", 30*24*time.Hour),
		Environment:   environment,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", defaultLogFormat(environment)),
		CorsConfig:    CorsConfig(getList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})),
		AuthRateLimit: getInt("AUTH_RATE_LIMIT", 5),
		AuthRateBurst: getInt("AUTH_RATE_BURST", 10),
		UserCacheSize: getInt("USER_CACHE_SIZE", 10000),
		UserCacheTTL:  getDuration("USER_CACHE_TTL", 10*time.Minute),
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			Region:          getEnv("R2_REGION", "auto"),
			PublicBaseURL:   getEnv("R2_PUBLIC_BASE_URL", ""),
		},
	}
}

func defaultLogFormat(environment string) string {
	if environment == "production" {
		return "json"
	}
	return "text"
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, value, fallback)
		return fallback
	}
	return d
}

// Comma separated
func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func CorsConfig(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
}
