// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/infrastructure/database/mongo"
	"github.com/your-org/storefront-api/internal/infrastructure/database/redis"
	httpserver "github.com/your-org/storefront-api/internal/interfaces/http"
	"github.com/your-org/storefront-api/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg)

	log.WithField("environment", cfg.App.Environment).Info("Starting " + cfg.App.Name)

	mongoClient, err := mongo.NewConnection(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to document store")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Close(ctx); err != nil {
			log.WithError(err).Error("Failed to close document store connection")
		}
	}()

	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.WithError(err).Error("Failed to close Redis connection")
		}
	}()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := mongoClient.EnsureIndexes(ctx)
		cancel()
		if err != nil {
			log.WithError(err).Fatal("Failed to ensure indexes")
		}
	}

	sweeper := cart.NewSweeper(mongo.NewCartRepository(mongoClient), cfg, log)
	if err := sweeper.Start(); err != nil {
		log.WithError(err).Fatal("Failed to start cart sweeper")
	}

	server := httpserver.NewServer(cfg, log, mongoClient, redisClient)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.WithError(err).Fatal("Server error")

	case sig := <-shutdown:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			log.WithError(err).Error("Graceful shutdown failed")
		}

		sweeper.Stop()
	}
}
