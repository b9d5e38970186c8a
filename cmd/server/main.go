package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"farmfresh/internal/cart"
	"farmfresh/internal/config"
	"farmfresh/internal/infrastructure/kafka"
	"farmfresh/internal/infrastructure/logger"
	"farmfresh/internal/infrastructure/mongodb"
	"farmfresh/internal/notification"
	"farmfresh/internal/order"
	"farmfresh/internal/server"
	"farmfresh/internal/wishlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mongodb.NewConnection(cfg.Mongo)
	if err != nil {
		zapLogger.Fatal("connecting to mongodb", zap.Error(err))
	}
	defer db.Client().Disconnect(context.Background())
	zapLogger.Info("database connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notificationRepo := notification.NewMongoRepository(db)
	emitters := notification.Fanout{notification.NewStoreEmitter(notificationRepo, zapLogger)}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, 256, zapLogger)
		producer.Start(ctx)
		emitters = append(emitters, notification.NewKafkaEmitter(producer, zapLogger))
		zapLogger.Info("kafka notifications enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	orderCtrl, sched := order.NewModule(db, cfg, emitters, zapLogger)
	cartCtrl := cart.NewModule(db, zapLogger)
	wishlistCtrl := wishlist.NewModule(db, zapLogger)
	notificationCtrl := notification.NewController(notificationRepo, zapLogger)

	go sched.Run(ctx)

	router := server.NewRouter(orderCtrl, cartCtrl, wishlistCtrl, notificationCtrl, zapLogger)
	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	if producer != nil {
		producer.WaitClosed()
	}

	zapLogger.Info("server stopped gracefully")
}
