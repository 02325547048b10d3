package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"pawmart-backend/internal/config"
	"pawmart-backend/internal/notify"
	"pawmart-backend/pkg/mailer"
	"pawmart-backend/pkg/messagequeue"
)

func main() {
	var (
		zapLogger *zap.Logger
		err       error
	)
	if strings.EqualFold(os.Getenv("GIN_MODE"), "release") {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	if appConfig.AMQPURL == "" {
		zapLogger.Fatal("CRITICAL_ERROR: AMQP_URL is required for the notifier")
	}

	m, err := mailer.New(mailer.Config{
		Host:     appConfig.SMTPHost,
		Port:     appConfig.SMTPPort,
		User:     appConfig.SMTPUser,
		Password: appConfig.SMTPPass,
		From:     appConfig.MailFrom,
	})
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to configure mailer", zap.Error(err))
	}

	mq, err := messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: appConfig.AMQPURL}, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mq.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	n := notify.NewNotifier(m, zapLogger)
	zapLogger.Info("Notifier consuming events", zap.String("queue", appConfig.AMQPQueue))
	if err := mq.Consume(ctx, appConfig.AMQPQueue, n.Handle); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Error("Consumer stopped", zap.Error(err))
		return
	}
	zapLogger.Info("Notifier exiting gracefully.")
}
