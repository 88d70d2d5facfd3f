package main

import (
	"context"
	"os"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/Sanjay-Kirti/YouMDB/internal/config"
	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/queue"
	"github.com/Sanjay-Kirti/YouMDB/internal/service"
	"github.com/Sanjay-Kirti/YouMDB/internal/service/insights"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
	"github.com/Sanjay-Kirti/YouMDB/internal/store/mongodb"
	"github.com/Sanjay-Kirti/YouMDB/internal/store/postgres"
	"github.com/Sanjay-Kirti/YouMDB/pkg/logger"
)

// Background worker: rating recomputation and creator insight generation
// pulled off the Redis task queue.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.Named("insights-worker")

	ctx := context.Background()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open record store", zap.Error(err))
	}
	defer closeStore()

	redisOpt, err := queue.ParseRedisURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL", zap.Error(err))
	}

	// Ratings get their own queue so a burst of insight tasks cannot
	// starve rating recomputation.
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"ratings": 6,
			"default": 4,
		},
	})

	reviews := service.NewReviewService(st, nil, logger.Named("reviews"))
	generator := insights.NewGenerator(logger.Named("generator"))

	handler := queue.NewHandler(reviews, generator, st)
	mux := asynq.NewServeMux()
	handler.Register(mux)

	log.Info("Worker starting", zap.String("redis", redisOpt.Addr))

	// Run blocks until SIGINT/SIGTERM and drains in-flight tasks.
	if err := srv.Run(mux); err != nil {
		log.Fatal("Worker stopped", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*store.Store, func(), error) {
	switch cfg.Database.Backend {
	case "mongodb":
		st, client, err := mongodb.Connect(ctx, cfg.Database.MongoURI, cfg.Database.Name)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = client.Disconnect(context.Background()) }, nil
	default:
		pool, err := db.NewPool(ctx, &db.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Name,
			SSLMode:         "disable",
			MaxConns:        int32(cfg.Database.MaxConnections),
			MinConns:        int32(cfg.Database.MinConnections),
			MaxConnLifetime: cfg.Database.MaxLifetime,
			MaxConnIdleTime: cfg.Database.MaxIdleTime,
		})
		if err != nil {
			return nil, nil, err
		}
		return postgres.New(pool), func() { db.Close(pool) }, nil
	}
}
