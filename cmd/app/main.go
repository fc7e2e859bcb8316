package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sidequest/config"
	"sidequest/internal/application/usecase"
	"sidequest/internal/domain"
	"sidequest/internal/infrastructure/cache"
	"sidequest/internal/infrastructure/repository"
	"sidequest/internal/infrastructure/security"
	"sidequest/internal/infrastructure/storage"
	"sidequest/internal/middleware"
	handlers "sidequest/internal/transport/http"
	"sidequest/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// 1. Конфиг
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}

	appLog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer appLog.Sync()

	// 2. Подключение к БД
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// 3. Миграции
	appLog.Info("running migrations")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Location{},
		&domain.Quest{},
		&domain.Progress{},
		&domain.GeoPhoto{},
		&domain.GeoAttempt{},
		&domain.Achievement{},
		&domain.UserAchievement{},
	); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	appLog.Info("connected to redis", "addr", cfg.RedisAddr)

	imageStorage, err := storage.NewImageStorage(context.Background(),
		cfg.S3Key, cfg.S3Secret, cfg.S3Region, cfg.S3Bucket, cfg.S3Endpoint)
	if err != nil {
		log.Fatalf("Failed to init image storage: %v", err)
	}

	// 4. Инициализация слоев
	userRepo := repository.NewUserRepository(db)
	questRepo := repository.NewQuestRepository(db)
	geoRepo := repository.NewGeoThinkrRepository(db)
	achRepo := repository.NewAchievementRepository(db)
	leaderboard := cache.NewLeaderboardCache(rdb)
	verifier := security.NewSessionVerifier(cfg.SessionSecret)
	rateLimiter := middleware.NewRateLimiter(rdb, appLog)

	// Справочник бейджей должен существовать до первой игры
	if err := achRepo.Seed(context.Background(), usecase.AchievementCatalog()); err != nil {
		log.Fatalf("Failed to seed achievements: %v", err)
	}

	questUC := usecase.NewQuestUseCase(questRepo, leaderboard, appLog)
	geoUC := usecase.NewGeoThinkrUseCase(geoRepo, achRepo, leaderboard, appLog,
		cfg.MapWidth, cfg.MapHeight)

	userHandler := handlers.NewUserHandler(userRepo, achRepo, geoRepo, imageStorage, appLog)
	questHandler := handlers.NewQuestHandler(questRepo, questUC, appLog)
	geoHandler := handlers.NewGeoThinkrHandler(geoUC, appLog)
	leaderboardHandler := handlers.NewLeaderboardHandler(userRepo, leaderboard, appLog)
	adminHandler := handlers.NewAdminHandler(userRepo, questRepo, geoRepo, imageStorage, leaderboard, appLog)

	// 5. Роутер и HTTP сервер
	router := handlers.NewRouter(verifier, cfg.AdminAPIKey, cfg.FrontendURL, rateLimiter,
		userHandler, questHandler, geoHandler, leaderboardHandler, adminHandler)

	srv := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		appLog.Info("side quest api running", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	appLog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("forced shutdown", "error", err)
	}
}
