package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/pkg/logger"
	"storefront/storefront-service/internal/app/storefront/config"
	"storefront/storefront-service/internal/app/storefront/handler"
	"storefront/storefront-service/internal/app/storefront/infrastructure"
	backend "storefront/storefront-service/internal/app/storefront/infrastructure/http"
	"storefront/storefront-service/internal/app/storefront/infrastructure/messaging"
	"storefront/storefront-service/internal/app/storefront/processor"
	"storefront/storefront-service/internal/app/storefront/repository"
	"storefront/storefront-service/internal/app/storefront/service"
	"storefront/storefront-service/internal/app/storefront/util"
)

const serviceName = "storefront-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init(serviceName, logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, serviceName, logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

	var kafkaProducer infrastructure.MessagePublisher = messaging.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer = messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info().
			Strs("brokers", cfg.Kafka.Brokers).
			Str("topic", cfg.Kafka.Topic).
			Msg("Initialized Kafka producer")
	} else {
		logger.Info().Msg("KAFKA_BROKERS is empty, storefront events are disabled")
	}
	defer kafkaProducer.Close()

	backendClient := backend.NewBackendClient(cfg.Backend.URL, cfg.Backend.Timeout)
	logger.Info().
		Str("backend_url", cfg.Backend.URL).
		Dur("timeout", cfg.Backend.Timeout).
		Msg("Initialized backend client")

	sessionRepo := repository.NewRedisSessionRepository(redisClient)
	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	sessionService := service.NewSessionService(backendClient, sessionRepo, jwtManager, cfg.Session.TTL)
	catalogService := service.NewCatalogService(backendClient, backendClient, kafkaProducer)
	reviewService := service.NewReviewService(backendClient, kafkaProducer)

	healthProbe := processor.NewHealthProbe(backendClient)
	if err := healthProbe.Start(ctx, cfg.Health.Schedule); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Health.Schedule).Msg("Failed to start backend health probe")
	}
	defer healthProbe.Stop()

	router := handler.SetupRoutes(
		handler.NewAuthHandler(sessionService),
		handler.NewProductHandler(catalogService),
		handler.NewReviewHandler(reviewService),
		handler.NewSessionMiddleware(sessionService),
		cfg.CORS.AllowedOrigins,
	)

	// WriteTimeout не задан: запросы к backend без таймаута не должны обрываться сервером
	server := &http.Server{
		Addr:        cfg.Server.Address(),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Storefront Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Storefront Service...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Storefront Service stopped gracefully")
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	for i := 0; i < 10; i++ {
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		logger.Warn().Int("attempt", i+1).Msg("Failed to connect to Redis, retrying...")
		time.Sleep(3 * time.Second)
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after 10 attempts")
}
