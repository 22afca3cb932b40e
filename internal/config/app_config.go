package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	AppPort               string
	AppEnv                string
	AppCorsAllowedOrigins []string
	DemoMode              bool

	MongoURI string
	MongoDB  string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTExp    int

	AdminUsername string
	AdminPassword string

	S3Bucket       string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3Endpoint     string
	S3PublicDomain string
	S3Folder       string

	ClassifierBaseURL      string
	ClassifierAPIKey       string
	ClassifierModelID      string
	ClassifierModelVersion string

	SubmitRateLimit       int
	SubmitRateLimitWindow int
	LoginRateLimit        int
	LoginRateLimitWindow  int

	LookupCacheTTLSeconds int

	ReclassifyCron string

	HTTPTimeoutSeconds int
}

func LoadAppConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, reading from system environment variables")
	}

	return &AppConfig{
		AppPort:               mustGetEnv("APP_PORT"),
		AppEnv:                getEnv("APP_ENV", "development"),
		AppCorsAllowedOrigins: strings.Split(getEnv("APP_CORS_ALLOWED_ORIGINS", "*"), ","),
		DemoMode:              getEnvAsBool("APP_DEMO_MODE", false),

		MongoURI: mustGetEnv("MONGO_URI"),
		MongoDB:  getEnv("MONGO_DB", "envwatch"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		JWTSecret: mustGetEnv("JWT_SECRET"),
		JWTExp:    getEnvAsInt("JWT_EXP", 12),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: mustGetEnv("ADMIN_PASSWORD"),

		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3PublicDomain: getEnv("S3_PUBLIC_DOMAIN", ""),
		S3Folder:       getEnv("S3_FOLDER", "env-reports"),

		ClassifierBaseURL:      getEnv("CLASSIFIER_BASE_URL", "https://detect.roboflow.com"),
		ClassifierAPIKey:       getEnv("CLASSIFIER_API_KEY", ""),
		ClassifierModelID:      getEnv("CLASSIFIER_MODEL_ID", "garbage-classification-3"),
		ClassifierModelVersion: getEnv("CLASSIFIER_MODEL_VERSION", "1"),

		SubmitRateLimit:       getEnvAsInt("SUBMIT_RATE_LIMIT", 10),
		SubmitRateLimitWindow: getEnvAsInt("SUBMIT_RATE_LIMIT_WINDOW_SECONDS", 60),
		LoginRateLimit:        getEnvAsInt("LOGIN_RATE_LIMIT", 5),
		LoginRateLimitWindow:  getEnvAsInt("LOGIN_RATE_LIMIT_WINDOW_SECONDS", 60),

		LookupCacheTTLSeconds: getEnvAsInt("LOOKUP_CACHE_TTL_SECONDS", 30),

		ReclassifyCron: getEnv("RECLASSIFY_CRON", "*/15 * * * *"),

		HTTPTimeoutSeconds: getEnvAsInt("HTTP_TIMEOUT_SECONDS", 30),
	}
}

// StorageConfigured reports whether real S3 credentials are present. Without
// them the upload step is mocked with a placeholder URL.
func (c *AppConfig) StorageConfigured() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func mustGetEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		slog.Error("Environment variable is required but not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		slog.Warn("Environment variable must be an integer, using fallback", "key", key, "value", valStr, "fallback", fallback)
		return fallback
	}
	return val
}

func getEnvAsBool(key string, fallback bool) bool {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		slog.Warn("Environment variable must be a boolean, using fallback", "key", key, "value", valStr, "fallback", fallback)
		return fallback
	}
	return val
}
