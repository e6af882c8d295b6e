package main

import (
	"context"
	"log"
	"time"

	"anoa.com/storyassistant/internal/bootstrap"
	"anoa.com/storyassistant/internal/config"
	"anoa.com/storyassistant/internal/llm"
	"anoa.com/storyassistant/internal/monitoring"
	"anoa.com/storyassistant/internal/server"
	"anoa.com/storyassistant/pkg/database"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := monitoring.InitSentry(cfg.SentryDSN, cfg.AppEnv); err != nil {
		log.Printf("⚠️ %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	db, err := database.Connect(database.Options{
		Driver:     cfg.DBDriver,
		DSN:        cfg.DatabaseURL,
		Host:       cfg.DBHost,
		User:       cfg.DBUser,
		Password:   cfg.DBPass,
		Name:       cfg.DBName,
		Port:       cfg.DBPort,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.IsDevelopment() {
		if err := bootstrap.SeedDemoUser(db); err != nil {
			log.Fatalf("failed to seed demo user: %v", err)
		}
	}

	redisClient := connectRedis(cfg.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
	}

	generator, err := llm.NewProvider(context.Background(), llm.Options{
		Provider:     cfg.LLMProvider,
		BaseURL:      cfg.LLMBaseURL,
		Model:        cfg.LLMModel,
		GroqAPIKey:   cfg.GroqAPIKey,
		GeminiAPIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		log.Fatalf("failed to initialize llm provider: %v", err)
	}
	defer generator.Close()

	srv := server.NewServer(cfg, db, redisClient, generator)

	log.Printf("🚀 Storytelling assistant listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// connectRedis returns nil when REDIS_URL is empty or unreachable.
func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("⚠️ REDIS_URL not set, using in-process sessions without rate limiting")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unreachable (%v), using in-process sessions without rate limiting", err)
		_ = client.Close()
		return nil
	}

	log.Println("✅ Connected to Redis")
	return client
}
