package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string

	// Identity provider (Clerk) configuration
	ClerkIssuerURL string // e.g. https://your-app.clerk.accounts.dev
	AuthJWTSecret  string // HS256 secret for local development tokens

	// Cloudinary media storage
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string // base folder, attachment kind is appended

	// Redis cache configuration
	RedisURL      string
	RedisPassword string

	// Profile read cache TTL in seconds
	ProfileCacheTTLSeconds int

	// Upload limits
	MaxUploadSizeMB  int
	UploadsPerMinute int
	RunMigrations    bool
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		ClerkIssuerURL: strings.TrimRight(getEnv("CLERK_ISSUER_URL", ""), "/"),
		AuthJWTSecret:  getEnv("AUTH_JWT_SECRET", ""),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "interview"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		ProfileCacheTTLSeconds: getEnvInt("PROFILE_CACHE_TTL_SECONDS", 300),

		MaxUploadSizeMB:  getEnvInt("MAX_UPLOAD_SIZE_MB", 10),
		UploadsPerMinute: getEnvInt("UPLOADS_PER_MINUTE", 10),
		RunMigrations:    getEnvBool("RUN_MIGRATIONS", true),
	}

	// Basic validation to avoid confusing failures later
	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.ClerkIssuerURL == "" && cfg.AuthJWTSecret == "" {
		log.Println("WARNING: neither CLERK_ISSUER_URL nor AUTH_JWT_SECRET is set. All requests will be rejected.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Profile cache and upload limits are disabled.")
	}

	return cfg, nil
}

// JWKSURL returns the identity provider's JWKS endpoint.
func (c *Config) JWKSURL() string {
	if c.ClerkIssuerURL == "" {
		return ""
	}
	return c.ClerkIssuerURL + "/.well-known/jwks.json"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
