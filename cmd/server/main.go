package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"order-desk/internal/configs"
	httpdelivery "order-desk/internal/delivery/http"
	"order-desk/internal/delivery/kafka"
	"order-desk/internal/metrics"
	"order-desk/internal/models"
	"order-desk/internal/repository"
	"order-desk/internal/repository/kv"
	"order-desk/internal/repository/store"
	"order-desk/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("config load: %s", err)
	}
	if err := cfg.SetupLogging(); err != nil {
		logrus.Fatalf("logging: %s", err)
	}
	logrus.Print("config parsed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, closeBackend, err := openStore(cfg)
	if err != nil {
		logrus.Fatalf("store %s: %s", cfg.StoreBackend, err)
	}
	defer closeBackend()
	logrus.WithField("backend", cfg.StoreBackend).Print("store opened")

	repo := repository.New(
		store.New[[]models.Order](backend, cfg.OrdersKey),
		store.New[int](backend, cfg.NextIDKey),
	)
	metrics.OrdersStored.Set(float64(repo.Len()))
	repo.Subscribe(func(ev repository.Event) {
		metrics.ObserveOrderEvent(string(ev.Type), ev.Total)
	})

	printer, err := newPrinter(cfg)
	if err != nil {
		logrus.Fatalf("printer: %s", err)
	}
	svc := service.NewService(repo, service.NewPrintService(service.NewMemorySurface(), printer))

	var wg sync.WaitGroup
	var consumer *kafka.Consumer
	if cfg.KafkaEnabled {
		events := kafka.NewPublisher(cfg.KafkaBrokersSlice(), cfg.KafkaEventsTopic)
		defer func() {
			if cerr := events.Close(); cerr != nil {
				logrus.Errorf("events publisher close: %v", cerr)
			}
		}()
		eventPub := kafka.NewEventPublisher(events, 5*time.Second, 256)
		defer eventPub.Close()
		repo.Subscribe(eventPub.Observe)

		consumer = kafka.NewConsumer(kafka.Config{
			Brokers:     cfg.KafkaBrokersSlice(),
			GroupID:     cfg.KafkaGroupID,
			Topic:       cfg.KafkaIntakeTopic,
			DLQ:         cfg.KafkaDLQTopic,
			MaxRetries:  cfg.KafkaMaxRetries,
			BaseBackoff: cfg.KafkaBackoff,
		}, svc)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Subscribe(ctx); err != nil {
				logrus.Errorf("consumer stopped: %v", err)
				cancel()
			}
		}()
		logrus.Print("kafka subscription started")
	}

	h := httpdelivery.NewHandler(svc)
	srv := new(httpdelivery.Server)

	go func() {
		if err := srv.Run(cfg.HTTPAddr, h.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("http run: %v", err)
			cancel()
		}
	}()
	logrus.Printf("http server started on %s", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logrus.Print("shutdown signal received")
	case <-ctx.Done():
		logrus.Print("context canceled, shutting down")
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("http shutdown: %s", err)
	}

	cancel()
	wg.Wait()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logrus.Errorf("consumer close: %s", err)
		}
	}
	logrus.Print("service stopped")
}

func openStore(cfg configs.Config) (kv.KV, func(), error) {
	nop := func() {}
	switch cfg.StoreBackend {
	case configs.BackendMemory:
		return kv.NewMemory(), nop, nil
	case configs.BackendFile:
		f, err := kv.NewFile(cfg.StoreFilePath)
		if err != nil {
			return nil, nil, err
		}
		return f, nop, nil
	case configs.BackendPostgres:
		db, err := kv.ConnectDSN(cfg.PgDSN())
		if err != nil {
			return nil, nil, err
		}
		p, err := kv.NewPostgres(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return p, func() {
			if derr := db.Close(); derr != nil {
				logrus.Errorf("db close: %v", derr)
			}
		}, nil
	case configs.BackendRedis:
		r, err := kv.NewRedis(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return r, func() {
			if rerr := r.Close(); rerr != nil {
				logrus.Errorf("redis close: %v", rerr)
			}
		}, nil
	}
	return nil, nil, errors.New("unknown backend")
}

func newPrinter(cfg configs.Config) (service.Printer, error) {
	if cfg.PrintCommand != "" {
		return service.NewCommandPrinter(cfg.PrintCommand)
	}
	return service.NewSpoolPrinter(cfg.PrintSpoolDir), nil
}
