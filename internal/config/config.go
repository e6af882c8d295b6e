package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPass      string
	DBName      string
	DBPort      string
	SQLitePath  string
	RedisURL    string

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryURL          string
	CloudinaryUploadFolder string

	LLMProvider  string
	LLMBaseURL   string
	LLMModel     string
	GroqAPIKey   string
	GeminiAPIKey string

	JWTSecret string
	JWTTTL    time.Duration

	SessionTTL        time.Duration
	RateLimitGenerate time.Duration

	TalesFile string
	SentryDSN string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "production"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPass:      os.Getenv("DB_PASS"),
		DBName:      getEnv("DB_NAME", "storytelling_assistant"),
		DBPort:      getEnv("DB_PORT", "5432"),
		SQLitePath:  getEnv("SQLITE_PATH", "storytelling_assistant.db"),
		RedisURL:    os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryURL:          os.Getenv("CLOUDINARY_URL"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "storytelling_assistant"),

		LLMProvider:  getEnv("LLM_PROVIDER", "groq"),
		LLMBaseURL:   getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMModel:     getEnv("LLM_MODEL", "llama-3.1-70b-versatile"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		TalesFile: getEnv("TALES_FILE", "db/well_known_tales.xlsx"),
		SentryDSN: os.Getenv("SENTRY_DSN"),
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET is not set")
		}
		cfg.JWTSecret = "change-me"
	}

	if cfg.CloudinaryURL == "" {
		cfg.CloudinaryURL = cloudinaryURLFromParts(
			os.Getenv("CLOUDINARY_CLOUD_NAME"),
			os.Getenv("CLOUDINARY_API_KEY"),
			os.Getenv("CLOUDINARY_API_SECRET"),
		)
	}

	switch cfg.LLMProvider {
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is not set")
		}
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	minutes, err := strconv.Atoi(getEnv("JWT_TTL_MINUTES", "60"))
	if err != nil || minutes <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL_MINUTES: %q", os.Getenv("JWT_TTL_MINUTES"))
	}
	cfg.JWTTTL = time.Duration(minutes) * time.Minute

	cfg.SessionTTL, err = parseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.RateLimitGenerate, err = parseDuration(getEnv("RATE_LIMIT_GENERATE", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_GENERATE: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs with APP_ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// cloudinaryURLFromParts returns "" unless all three parts are present.
func cloudinaryURLFromParts(cloudName, apiKey, apiSecret string) string {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return ""
	}
	u := url.URL{Scheme: "cloudinary", User: url.UserPassword(apiKey, apiSecret), Host: cloudName}
	return u.String()
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
