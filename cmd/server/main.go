package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/devlink/devlink/adapters/event"
	httpAdapter "github.com/devlink/devlink/adapters/http"
	"github.com/devlink/devlink/adapters/persistence"
	authUC "github.com/devlink/devlink/internal/application/usecase/auth"
	profileUC "github.com/devlink/devlink/internal/application/usecase/profile"
	"github.com/devlink/devlink/internal/config"
	"github.com/devlink/devlink/pkg/auth"
	"github.com/devlink/devlink/pkg/logger"
	"github.com/devlink/devlink/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("starting DevLink API server", zap.String("env", cfg.App.Env))

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "devlink-api")
		if err != nil {
			appLogger.Fatal("cannot init tracer provider", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				appLogger.Error("tracer shutdown failed", err)
			}
		}()
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()
	profileCache := persistence.NewProfileCache(redisClient, cfg.Redis.CacheTTL, appLogger)

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka producer", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	accountRemover := persistence.NewAccountRemover(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, accountRemover, kafkaClient, profileCache, appLogger)

	// HTTP
	authHandler := httpAdapter.NewAuthHandler(registerUseCase, loginUseCase)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase)
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)

	router := httpAdapter.NewRouter(authHandler, profileHandler, authMiddleware, appLogger)

	appLogger.Info("server listening", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("cannot run server", err)
	}
}
