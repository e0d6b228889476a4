package main

// @title Waste Management API
// @version 1.0.0
// @description Сервис управления вывозом мусора для муниципалитетов. Жители оставляют заявки на вывоз, система подбирает ближайшую свободную машину, водители ведут заявку до завершения, админы управляют парком и учетками своего муниципалитета.
// @description
// @description Основные возможности:
// @description - Регистрация жителей и вход по JWT (access/refresh)
// @description - Заявки на вывоз с автоматическим подбором ближайшей машины
// @description - Управление парком машин и водителями муниципалитета
// @description - Сводки дашборда по ролям с кешированием

// @contact.name API Support
// @contact.email support@waste-management.example

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/waste-management/docs/swagger"
	"github.com/waste-management/internal/auth"
	"github.com/waste-management/internal/config"
	httpDelivery "github.com/waste-management/internal/delivery/http"
	"github.com/waste-management/internal/delivery/http/handler"
	"github.com/waste-management/internal/pkg/logger"
	"github.com/waste-management/internal/repository/cache"
	"github.com/waste-management/internal/repository/postgres"
	redisrepo "github.com/waste-management/internal/repository/redis"
	"github.com/waste-management/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Waste Management Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize Repositories
	userRepo := postgres.NewUserRepository(db)
	lgRepo := postgres.NewLocalGovernmentRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	pickupRepo := postgres.NewPickupRepository(db)
	statsRepo := postgres.NewStatsRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisrepo.NewStreamRepository(redisClient.Client(), log)
	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	authUC := usecase.NewAuthUseCase(userRepo, jwtManager, log)
	userUC := usecase.NewUserUseCase(userRepo, lgRepo, log)
	lgUC := usecase.NewLocalGovernmentUseCase(lgRepo, log)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, userRepo, log)
	pickupUC := usecase.NewPickupUseCase(pickupRepo, vehicleRepo, userRepo, streamRepo, lgUC, log)
	statsUC := usecase.NewStatsUseCase(statsRepo, cacheRepo, cfg.Cache.StatsCacheTTL, log)
	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	authHandler := handler.NewAuthHandler(authUC, log)
	userHandler := handler.NewUserHandler(userUC, log)
	lgHandler := handler.NewLocalGovernmentHandler(lgUC, log)
	vehicleHandler := handler.NewVehicleHandler(vehicleUC, log)
	pickupHandler := handler.NewPickupHandler(pickupUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)
	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		db,
		jwtManager,
		authHandler,
		userHandler,
		lgHandler,
		vehicleHandler,
		pickupHandler,
		statsHandler,
	)
	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
