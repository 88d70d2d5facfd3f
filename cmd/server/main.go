package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Sanjay-Kirti/YouMDB/internal/config"
	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/handler"
	"github.com/Sanjay-Kirti/YouMDB/internal/middleware"
	"github.com/Sanjay-Kirti/YouMDB/internal/queue"
	"github.com/Sanjay-Kirti/YouMDB/internal/search"
	"github.com/Sanjay-Kirti/YouMDB/internal/service"
	"github.com/Sanjay-Kirti/YouMDB/internal/service/youtube"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
	"github.com/Sanjay-Kirti/YouMDB/internal/store/mongodb"
	"github.com/Sanjay-Kirti/YouMDB/internal/store/postgres"
	"github.com/Sanjay-Kirti/YouMDB/pkg/logger"
)

func main() {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(slogger)

	cfg, err := config.Load()
	if err != nil {
		slogger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		slogger.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	st, storeHealthy, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slogger.Error("failed to open record store", "error", err, "backend", cfg.Database.Backend)
		os.Exit(1)
	}
	defer closeStore()

	slogger.Info("record store ready", "backend", cfg.Database.Backend)

	// Task queue client (optional): rating refresh and insight generation
	// fall back to inline work without it.
	var queueClient *queue.Client
	if cfg.Redis.URL != "" {
		queueClient, err = queue.NewClient(cfg.Redis.URL)
		if err != nil {
			slogger.Warn("failed to initialize queue client, ratings will be recomputed inline", "error", err)
		} else {
			defer queueClient.Close()
		}
	}

	// Suggestion event publisher (optional): without it the import worker
	// relies on its periodic sweep.
	var publisher *service.MessagePublisher
	publisher, err = service.NewMessagePublisher(&cfg.RabbitMQ)
	if err != nil {
		slogger.Warn("failed to connect to RabbitMQ, suggestion events will not be published", "error", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	var enqueuer service.RatingEnqueuer
	var insightsEnqueuer handler.InsightsEnqueuer
	var summaryEnqueuer handler.SummaryEnqueuer
	if queueClient != nil {
		enqueuer = queueClient
		insightsEnqueuer = queueClient
		summaryEnqueuer = queueClient
	}

	reviewService := service.NewReviewService(st, enqueuer, logger.Named("reviews"))

	var eventPublisher service.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	suggestionService := service.NewSuggestionService(st, eventPublisher, logger.Named("suggestions"))

	engine := search.NewEngine(st.Creators)

	// Synchronous channel import (optional - only if API key is provided)
	var importHandler *handler.ImportHandler
	if cfg.YouTube.APIKey != "" {
		ytClient, err := youtube.NewClient(cfg.YouTube.APIKey)
		if err != nil {
			slogger.Warn("failed to initialize YouTube API client, URL-based import will not be available", "error", err)
		} else {
			importer := service.NewImporterService(ytClient, st, logger.Named("importer"))
			importHandler = handler.NewImportHandler(importer, slogger)
		}
	} else {
		slogger.Info("YouTube API key not configured, URL-based import will not be available")
	}

	creatorHandler := handler.NewCreatorHandler(st, insightsEnqueuer, slogger)
	videoHandler := handler.NewVideoHandler(st, summaryEnqueuer, slogger)
	reviewHandler := handler.NewReviewHandler(reviewService, slogger)
	suggestionHandler := handler.NewSuggestionHandler(suggestionService, slogger)
	searchHandler := handler.NewSearchHandler(engine, slogger)

	checks := map[string]handler.HealthChecker{
		"store": storeHealthy,
	}
	if publisher != nil {
		checks["rabbitmq"] = publisher.IsHealthy
	}
	healthHandler := handler.NewHealthHandler(checks)

	identity := middleware.NewIdentity(cfg.Auth.JWTSecret, slogger)
	adminKey := middleware.NewAdminKey(cfg.Auth.AdminAPIKeys, slogger)
	metrics := middleware.NewMetrics(nil)

	route := func(name string, h http.Handler) http.Handler {
		return metrics.Middleware(name, identity.Middleware(h))
	}

	// Creator and video writes are operator actions; reads stay public.
	gateMethod := func(method string, h http.Handler) http.Handler {
		guarded := adminKey.Middleware(h)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == method {
				guarded.ServeHTTP(w, r)
				return
			}
			h.ServeHTTP(w, r)
		})
	}

	mux := http.NewServeMux()

	mux.Handle("/api/v1/creators", route("creators", gateMethod(http.MethodPost, creatorHandler)))
	mux.Handle("/api/v1/creators/", route("creators", gateMethod(http.MethodPost, creatorHandler)))
	mux.Handle("/api/v1/videos", route("videos", gateMethod(http.MethodPost, videoHandler)))
	mux.Handle("/api/v1/videos/", route("videos", gateMethod(http.MethodPost, videoHandler)))
	mux.Handle("/api/v1/reviews", route("reviews", reviewHandler))
	mux.Handle("/api/v1/reviews/", route("reviews", reviewHandler))
	mux.Handle("/api/v1/suggestions", route("suggestions", gateMethod(http.MethodGet, suggestionHandler)))
	mux.Handle("/api/v1/search", route("search", searchHandler))
	mux.Handle("/api/v1/search/", route("search", searchHandler))

	// URL-based import endpoint (operator only, requires YouTube API)
	if importHandler != nil {
		mux.Handle("/api/v1/creators/from-url", metrics.Middleware("import", adminKey.Middleware(importHandler)))
	}

	mux.Handle("/health", healthHandler)
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		slogger.Error("server error", "error", err)
		os.Exit(1)
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slogger.Error("graceful shutdown failed", "error", err)
			if err := server.Close(); err != nil {
				slogger.Error("failed to close server", "error", err)
			}
			os.Exit(1)
		}

		slogger.Info("server stopped gracefully")
	}
}

// openStore builds the record store for the configured backend and
// returns it with a health probe and a close function.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, func() bool, func(), error) {
	switch cfg.Database.Backend {
	case "mongodb":
		st, client, err := mongodb.Connect(ctx, cfg.Database.MongoURI, cfg.Database.Name)
		if err != nil {
			return nil, nil, nil, err
		}
		healthy := func() bool {
			return pingMongo(client)
		}
		closeFn := func() {
			_ = client.Disconnect(context.Background())
		}
		return st, healthy, closeFn, nil
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
			return nil, nil, nil, err
		}
		healthy := func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(ctx) == nil
		}
		closeFn := func() {
			db.Close(pool)
		}
		return postgres.New(pool), healthy, closeFn, nil
	}
}

func pingMongo(client *mongo.Client) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx, readpref.Primary()) == nil
}
