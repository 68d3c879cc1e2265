package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pinball19/bus-app-2/internal/app/board"
	"github.com/pinball19/bus-app-2/internal/app/roster"
	"github.com/pinball19/bus-app-2/internal/domain/driver"
	"github.com/pinball19/bus-app-2/internal/domain/message"
	"github.com/pinball19/bus-app-2/internal/domain/schedule"
	"github.com/pinball19/bus-app-2/internal/infra/broker/kafka"
	"github.com/pinball19/bus-app-2/internal/infra/config"
	"github.com/pinball19/bus-app-2/internal/infra/db/mongo"
	ginserver "github.com/pinball19/bus-app-2/internal/infra/http/gin"
	"github.com/pinball19/bus-app-2/internal/infra/obs"
	"github.com/pinball19/bus-app-2/internal/infra/storage/memory"
	"github.com/pinball19/bus-app-2/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration load failed", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, cleanup, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	ready := func() error { return nil }
	if app.ping != nil {
		ready = func() error { return app.ping(context.Background()) }
	}
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ping     func(context.Context) error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func(), error) {
	var (
		store    schedule.Store
		drivers  driver.Repository
		messages message.Repository
		feed     board.Feed
		pub      board.Publisher
		ping     func(context.Context) error
		cleanup  = func() {}
	)

	switch cfg.StoreMode {
	case "memory":
		mem := memory.NewStore()
		inproc := memory.NewFeed()
		store, drivers, messages = mem, memory.DriverRepo{Store: mem}, mem
		feed, pub = inproc, inproc
	default:
		client, err := mongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, nil, err
		}
		store = mongo.NewScheduleStore(client.DB)
		drivers = mongo.NewDriverRepository(client.DB)
		messages = mongo.NewMessageRepository(client.DB)
		ping = client.Ping

		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, nil)
		if err != nil {
			return application{}, nil, err
		}
		pub = producer
		feed = &kafka.Feed{
			Brokers:     cfg.KafkaBrokers,
			Topic:       cfg.KafkaTopic,
			GroupPrefix: cfg.KafkaGroupID,
			Logger:      logger,
		}
		cleanup = func() {
			if err := producer.Close(); err != nil {
				logger.Error("kafka producer close failed", "error", err)
			}
		}
	}

	boardSvc := &board.Service{Store: store, Feed: feed, Vehicles: cfg.Vehicles, Logger: logger, FeedCtx: ctx}
	writer := &board.Writer{Store: store, Publisher: pub, Vehicles: cfg.Vehicles, Logger: logger}
	rosterSvc := &roster.Service{Drivers: drivers, Store: store, Logger: logger}

	var archive ginserver.Archiver
	if cfg.ArchiveEnabled() {
		a, err := s3.NewArchive(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, logger)
		if err != nil {
			return application{}, nil, err
		}
		archive = a
	}

	app := application{
		handlers: ginserver.Handlers{
			Board:    ginserver.BoardHandler{Board: boardSvc, Store: store, Archive: archive},
			Schedule: ginserver.ScheduleHandler{Writer: writer},
			Driver:   ginserver.DriverHandler{Roster: rosterSvc, UpcomingDays: cfg.UpcomingDays},
			Message:  ginserver.MessageHandler{Messages: messages},
		},
		ping: ping,
	}
	wrapped := func() {
		boardSvc.Close()
		cleanup()
	}
	return app, wrapped, nil
}
