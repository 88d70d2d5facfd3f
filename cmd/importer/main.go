package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Sanjay-Kirti/YouMDB/internal/config"
	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/service"
	"github.com/Sanjay-Kirti/YouMDB/internal/service/youtube"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
	"github.com/Sanjay-Kirti/YouMDB/internal/store/mongodb"
	"github.com/Sanjay-Kirti/YouMDB/internal/store/postgres"
	"github.com/Sanjay-Kirti/YouMDB/pkg/logger"
)

// The importer consumes suggestion.received events from RabbitMQ and
// periodically sweeps the store for suggestions the broker never
// delivered (publish failures, dropped messages, earlier crashes).
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

	log := logger.Named("importer")

	if cfg.YouTube.APIKey == "" {
		log.Fatal("YouTube API key is required for the import worker")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open record store", zap.Error(err))
	}
	defer closeStore()

	ytClient, err := youtube.NewClient(cfg.YouTube.APIKey)
	if err != nil {
		log.Fatal("Failed to initialize YouTube API client", zap.Error(err))
	}

	importer := service.NewImporterService(ytClient, st, log)

	consumer, err := service.NewMessageConsumer(&cfg.RabbitMQ)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ, running sweep-only", zap.Error(err))
		consumer = nil
	} else {
		defer consumer.Close()
	}

	consumerDone := make(chan error, 1)
	if consumer != nil {
		go func() {
			consumerDone <- consumer.Consume(ctx, func(ctx context.Context, event *models.SuggestionEvent) error {
				suggestion, err := st.Suggestions.GetByID(ctx, event.SuggestionID)
				if err != nil {
					return err
				}
				if suggestion.Processed {
					return nil
				}
				return importer.ProcessSuggestion(ctx, suggestion)
			})
		}()
	}

	// Sweep catches suggestions whose events never arrived.
	ticker := time.NewTicker(cfg.Import.SweepInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := importer.SweepUnprocessed(ctx)
				if err != nil {
					log.Warn("Sweep failed", zap.Error(err))
					continue
				}
				if n > 0 {
					log.Info("Sweep processed pending suggestions", zap.Int("count", n))
				}
			}
		}
	}()

	log.Info("Import worker started",
		zap.String("queue", cfg.RabbitMQ.Queue),
		zap.Duration("sweepInterval", cfg.Import.SweepInterval))

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	case err := <-consumerDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Consumer stopped", zap.Error(err))
			os.Exit(1)
		}
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
