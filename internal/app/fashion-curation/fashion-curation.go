package fashioncuration

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/fashion-curation/internal/cache"
	"github.com/magabrotheeeer/fashion-curation/internal/config"
	"github.com/magabrotheeeer/fashion-curation/internal/migrations"
	"github.com/magabrotheeeer/fashion-curation/internal/rabbitmq"
	"github.com/magabrotheeeer/fashion-curation/internal/services"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
)

type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *storage.Storage
	cache    *cache.Cache
	amqpConn *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	amqpConn, err := rabbitmq.Connect(cfg.RabbitMQ.ConnectionString, cfg.RabbitMQ.ConnectRetries, cfg.RabbitMQ.ConnectDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetTaggingQueues(cfg.RabbitMQ.QueueName))
	if err != nil {
		return nil, err
	}
	if err := rabbitmq.ConsumerMessage(ctx, ch, cfg.RabbitMQ.QueueName, rabbitmq.NewSnapshotHandler(logger, db)); err != nil {
		return nil, err
	}

	subscriberService := services.NewSubscriberService(db, logger, cfg.Matching.NewProductDays)
	recommendationService := services.NewRecommendationService(db, cacheRedis, logger, cfg.Matching, cfg.BrandAffinity)
	gateService := services.NewGateService(db, logger, cfg.Gate)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, db, subscriberService, recommendationService, gateService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		cache:    cacheRedis,
		amqpConn: amqpConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.amqpConn.Close()
		a.db.DB.Close()
		return err
	}
}
