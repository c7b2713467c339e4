package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/rinkside/internal/api/rest"
	"github.com/fortuna/rinkside/internal/api/websocket"
	"github.com/fortuna/rinkside/internal/backfill"
	"github.com/fortuna/rinkside/internal/cache"
	"github.com/fortuna/rinkside/internal/config"
	"github.com/fortuna/rinkside/internal/ingest/nhl"
	"github.com/fortuna/rinkside/internal/publisher"
	"github.com/fortuna/rinkside/internal/store"
	"github.com/fortuna/rinkside/internal/store/repository"
)

const (
	serviceName    = "rinkside"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - NHL Play-by-Play Service", serviceName, serviceVersion)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Database is optional: without it games are assembled on demand and
	// never persisted.
	var db *store.Database
	if cfg.PostgresDSN != "" {
		db, err = store.NewDatabase(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.EnsureSchema(); err != nil {
			log.Fatalf("Failed to apply database schema: %v", err)
		}
		log.Println("✓ Connected to database, schema applied")
	} else {
		log.Println("No database configured, running without persistence")
	}

	// Redis is optional: it backs the document cache and the completion
	// stream. Connection failures retry because Redis often starts after us.
	var redisCache *cache.RedisCache
	if cfg.RedisURL != "" {
		maxRetries := 30
		retryDelay := 2 * time.Second

		log.Println("Connecting to Redis...")
		for i := 0; i < maxRetries; i++ {
			redisCache, err = cache.NewRedisCache(cfg.RedisURL)
			if err == nil {
				break
			}
			if i < maxRetries-1 {
				log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
				time.Sleep(retryDelay)
			} else {
				log.Fatalf("Failed to connect to Redis after %d attempts: %v", maxRetries, err)
			}
		}
		redisCache.SetTTL(cfg.CacheTTL)
		defer redisCache.Close()
		log.Println("✓ Connected to Redis")
	} else {
		log.Println("No Redis configured, running without document cache")
	}

	// Upstream client and per-game assembler
	client := nhl.NewClient(
		nhl.WithBaseURLs(cfg.GamecenterBase, cfg.StatsBase),
		nhl.WithReportsBase(cfg.ReportsBase),
		nhl.WithRetries(cfg.FetchRetries, 0),
	)

	ingesterOpts := []nhl.IngesterOption{nhl.WithGameConcurrency(cfg.GameConcurrency)}
	if redisCache != nil {
		ingesterOpts = append(ingesterOpts, nhl.WithCache(redisCache))
	}
	ingester := nhl.NewIngester(client, ingesterOpts...)

	// Backfill runner: persist completed games when a database is present,
	// announce them when Redis is present.
	runnerOpts := []backfill.RunnerOption{backfill.WithConcurrency(cfg.GameConcurrency)}
	if db != nil {
		runnerOpts = append(runnerOpts, backfill.WithSink(repository.NewEventRepository(db)))
	}
	if redisCache != nil {
		runnerOpts = append(runnerOpts, backfill.WithAnnouncer(publisher.NewRedisStreamPublisher(redisCache.Client())))
	}
	runner := backfill.NewRunner(ingester, runnerOpts...)

	backfillService := backfill.NewService(runner, log.Default())
	backfillService.Start()
	log.Println("✓ Backfill service started")

	// WebSocket progress feed
	wsServer := websocket.NewServer(cfg.AllowedWSOrigins())
	backfillService.AddReporter(wsServer.Reporter())
	go func() {
		if err := wsServer.Start(cfg.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()
	log.Printf("✓ WebSocket server listening on :%s", cfg.WSPort)

	// REST API
	restServer := rest.NewServer(cfg.RESTPort, db, ingester, backfillService)
	go func() {
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()
	log.Printf("✓ REST API server listening on :%s", cfg.RESTPort)
	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := backfillService.Shutdown(shutdownCtx); err != nil {
		log.Printf("Backfill service shutdown error: %v", err)
	}
	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}
