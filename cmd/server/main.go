package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pawmart-backend/internal/api"
	"pawmart-backend/internal/config"
	"pawmart-backend/internal/core"
	"pawmart-backend/internal/db"
	"pawmart-backend/internal/firebase"
	"pawmart-backend/internal/metrics"
	"pawmart-backend/internal/middleware"
	"pawmart-backend/pkg/cache"
	"pawmart-backend/pkg/messagequeue"
)

func newLogger(ginMode string) (*zap.Logger, error) {
	if strings.EqualFold(ginMode, "release") {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	// --- 1. Logger and configuration ---
	zapLogger, err := newLogger(os.Getenv("GIN_MODE"))
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 2. Firebase app, Firestore and Auth clients ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()

	app, err := firebase.NewApp(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	clients, err := db.InitFirestore(initCtx, app, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore and Auth clients", zap.Error(err))
	}
	defer clients.Close()

	// --- 3. Optional listing cache and event queue ---
	var listingCache cache.Cache = cache.Noop{}
	if appConfig.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(initCtx, cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		}, zapLogger)
		if err != nil {
			zapLogger.Warn("Listing cache disabled: Redis unreachable", zap.Error(err))
		} else {
			listingCache = redisCache
			defer redisCache.Close()
		}
	}

	var queue messagequeue.MessageQueue
	if appConfig.AMQPURL != "" {
		rabbit, err := messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: appConfig.AMQPURL}, zapLogger)
		if err != nil {
			zapLogger.Warn("Domain events disabled: RabbitMQ unreachable", zap.Error(err))
		} else {
			queue = rabbit
			defer rabbit.Close()
		}
	}
	events := core.NewEventPublisher(queue, appConfig.AMQPQueue, zapLogger)

	// --- 4. Repositories and services ---
	fs := clients.Firestore
	userRepo := db.NewFirestoreUserRepository(fs, zapLogger)
	listingRepo := db.NewFirestoreListingRepository(fs, zapLogger)
	orderRepo := db.NewFirestoreOrderRepository(fs, zapLogger)
	auditRepo := db.NewFirestoreAuditRepository(fs, zapLogger)

	policy := core.NewPolicy(userRepo, zapLogger)
	auditService := core.NewAuditService(auditRepo)
	listingService := core.NewListingService(listingRepo, userRepo, policy, auditService, events, listingCache, appConfig.ListingCacheTTL, zapLogger)
	orderService := core.NewOrderService(orderRepo, listingRepo, policy, auditService, events, zapLogger)
	userService := core.NewUserService(userRepo, policy, auditService, zapLogger)
	zapLogger.Info("Core services initialized successfully.")

	// --- 5. HTTP engine ---
	if appConfig.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	metrics.RegisterDefault()

	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORSMiddleware(appConfig))
	router.Use(middleware.RequestTimeout(appConfig.RequestTimeout))
	if appConfig.ClientURL == "" {
		zapLogger.Warn("CLIENT_URL is not configured; CORS allows every origin without credentials.")
	}

	authMW := middleware.NewAuthMiddleware(clients.Auth, zapLogger)
	api.SetupRoutes(router, zapLogger, authMW, listingService, orderService, userService)

	// --- 6. Serve with graceful shutdown ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	zapLogger.Info("Server exiting gracefully.")
}
