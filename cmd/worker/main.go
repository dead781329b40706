package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/devlink/devlink/adapters/event"
	"github.com/devlink/devlink/adapters/persistence"
	"github.com/devlink/devlink/internal/config"
	"github.com/devlink/devlink/pkg/logger"
)

// The worker trails profile mutations and drops the stale cache entries so
// API reads never serve an outdated profile past the next event.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("starting DevLink cache worker")

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()
	cache := persistence.NewProfileCache(redisClient, cfg.Redis.CacheTTL, appLogger)

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  "profile-cache-invalidator",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("worker listening", zap.String("topic", event.TopicProfileEvents))

	ctx := context.Background()
	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			appLogger.Error("failed to fetch message", err)
			continue
		}

		var payload event.ProfileEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("failed to unmarshal event, skipping", err, zap.String("key", string(msg.Key)))
			commitMessage(consumer, msg, appLogger)
			continue
		}

		keys := []string{persistence.CacheKeyAllProfiles}
		if payload.Handle != "" {
			keys = append(keys, persistence.CacheKeyHandle(payload.Handle))
		}
		if err := cache.Delete(ctx, keys...); err != nil {
			// leave uncommitted so the entry is retried
			appLogger.Error("failed to invalidate cache", err, zap.String("user_id", payload.UserID.String()))
			continue
		}

		appLogger.Info("cache invalidated",
			zap.String("event_type", string(payload.EventType)),
			zap.String("user_id", payload.UserID.String()),
			zap.Strings("keys", keys))

		commitMessage(consumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("failed to commit message", err)
	}
}
