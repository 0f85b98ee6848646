package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/jobboard/internal/jobboard/auth"
	"github.com/gartstein/jobboard/internal/jobboard/config"
	"github.com/gartstein/jobboard/internal/jobboard/controller"
	"github.com/gartstein/jobboard/internal/jobboard/db"
	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/handlers"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// eventProducer is the producer surface main owns: services publish, main closes.
type eventProducer interface {
	controller.EventProducer
	Close()
}

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	logger := initLogger(cfg.LogDevelopment)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	repo, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	producer := initProducer(cfg, logger)
	defer producer.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	gate := auth.NewGate(tokens, repo, logger)

	handler := handlers.NewHandler(
		controller.NewUserService(repo, tokens, cfg.BcryptCost, logger),
		controller.NewCompanyService(repo, producer, logger),
		controller.NewJobService(repo, producer, logger),
		controller.NewApplicationService(repo, producer, logger),
		logger,
	)
	router := handlers.NewRouter(handlers.RouterConfig{
		BasePath:    cfg.BasePath,
		CORSOrigins: cfg.CORSOrigins,
	}, handler, gate.Middleware(), logger)

	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger)
	if err := server.RegisterHTTPGateway(
		[]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())},
		router,
	); err != nil {
		logger.Fatal("Failed to register HTTP gateway", zap.Error(err))
	}

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start servers", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

func configPath() string {
	if path, ok := os.LookupEnv("CONFIG_PATH"); ok {
		return path
	}
	return config.DefaultPath
}

// initLogger initializes a Zap production logger, or a development one when asked.
func initLogger(development bool) *zap.Logger {
	build := zap.NewProduction
	if development {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// initDatabase connects with retries, since the database usually starts
// alongside the service.
func initDatabase(cfg *config.Config, logger *zap.Logger) (*db.Repository, error) {
	dbConf := &db.Config{
		Driver:   cfg.DBDriver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}

	var repo *db.Repository
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), cfg.DBConnectRetries)
	err := backoff.RetryNotify(func() error {
		var err error
		repo, err = db.NewRepository(dbConf)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.Ping(ctx); err != nil {
			if closeErr := repo.Close(); closeErr != nil {
				logger.Warn("Failed to close unreachable database pool", zap.Error(closeErr))
			}
			repo = nil
			return err
		}
		return nil
	}, policy, func(err error, wait time.Duration) {
		logger.Warn("Database not ready, retrying", zap.Error(err), zap.Duration("wait", wait))
	})
	return repo, err
}

// initProducer connects to Kafka when brokers are configured. Without
// brokers, or when Kafka stays unreachable, events are discarded.
func initProducer(cfg *config.Config, logger *zap.Logger) eventProducer {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("No Kafka brokers configured, domain events disabled")
		return events.NopProducer{}
	}

	var producer *events.Producer
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	err := backoff.RetryNotify(func() error {
		var err error
		producer, err = events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
		return err
	}, policy, func(err error, wait time.Duration) {
		logger.Warn("Kafka not ready, retrying", zap.Error(err), zap.Duration("wait", wait))
	})
	if err != nil {
		logger.Error("Failed to initialize Kafka producer, domain events disabled", zap.Error(err))
		return events.NopProducer{}
	}
	return producer
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down servers.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Servers stopped properly")
}
