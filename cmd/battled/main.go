package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/veyrin/skirmish/internal/config"
	"github.com/veyrin/skirmish/internal/domain/conditions"
	"github.com/veyrin/skirmish/internal/domain/skills"
	"github.com/veyrin/skirmish/internal/gateway"
	"github.com/veyrin/skirmish/internal/repositories/battles"
	"github.com/veyrin/skirmish/internal/services/battle"
	"github.com/veyrin/skirmish/internal/services/skill"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client
	repo := battles.NewInMemoryRepository()

	// Try to connect to Redis if URL is provided
	if cfg.Redis.URL != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.URL)

		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to in-memory repositories")
		} else {
			redisClient = redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
				cancel()
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to in-memory repositories")
				redisClient = nil
			} else {
				cancel()
				log.Println("Successfully connected to Redis")
				repo = battles.NewRedis(redisClient)
				log.Println("Using Redis for persistence")
			}
		}
	} else {
		log.Println("No REDIS_URL found, using in-memory repositories")
	}

	condCatalog := conditions.DefaultCatalog()
	skillCatalog := skills.DefaultCatalog()

	skillService, err := skill.NewService(&skill.ServiceConfig{
		Skills:     skillCatalog,
		Conditions: condCatalog,
	})
	if err != nil {
		log.Fatalf("Failed to create skill service: %v", err)
	}

	manager, err := battle.NewManager(&battle.ManagerConfig{
		Repository:              repo,
		Conditions:              condCatalog,
		SkillService:            skillService,
		DefaultTurnTimerSeconds: cfg.Battle.TurnTimerSeconds,
	})
	if err != nil {
		log.Fatalf("Failed to create battle manager: %v", err)
	}

	gw, err := gateway.New(&gateway.Config{Manager: manager})
	if err != nil {
		log.Fatalf("Failed to create gateway: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           gw.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Drive every battle's turn timer off one wall clock
	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			manager.Tick()
		}
	}()

	go func() {
		log.Printf("Listening on %s", cfg.HTTP.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", serveErr)
		}
	}()

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Println("Shutting down...")
	ticker.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
	if err := manager.Shutdown(shutdownCtx); err != nil {
		log.Printf("Battle manager shutdown error: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}
