package usecase

import (
	"context"
	"fmt"
	"testing"

	"sidequest/internal/domain"
	"sidequest/internal/infrastructure/cache"
	"sidequest/internal/infrastructure/repository"
	applog "sidequest/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db        *gorm.DB
	userRepo  *repository.UserRepository
	questRepo *repository.QuestRepository
	geoRepo   *repository.GeoThinkrRepository
	achRepo   *repository.AchievementRepository
	questUC   *QuestUseCase
	geoUC     *GeoThinkrUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

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
		t.Fatalf("failed to migrate test db: %v", err)
	}

	log, err := applog.New("dev")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	// Редис в тестах недоступен — инвалидация кэша просто пишет warn,
	// на логику начислений это влиять не должно
	deadRedis := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	leaderboard := cache.NewLeaderboardCache(deadRedis)

	userRepo := repository.NewUserRepository(db)
	questRepo := repository.NewQuestRepository(db)
	geoRepo := repository.NewGeoThinkrRepository(db)
	achRepo := repository.NewAchievementRepository(db)

	if err := achRepo.Seed(context.Background(), AchievementCatalog()); err != nil {
		t.Fatalf("failed to seed achievements: %v", err)
	}

	return &testEnv{
		db:        db,
		userRepo:  userRepo,
		questRepo: questRepo,
		geoRepo:   geoRepo,
		achRepo:   achRepo,
		questUC:   NewQuestUseCase(questRepo, leaderboard, log),
		geoUC:     NewGeoThinkrUseCase(geoRepo, achRepo, leaderboard, log, 2000, 1400),
	}
}

func (e *testEnv) user(t *testing.T) *domain.User {
	t.Helper()
	u := &domain.User{ID: uuid.New(), Email: uuid.NewString() + "@campus.test"}
	if err := e.userRepo.Create(context.Background(), u); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}

func (e *testEnv) quest(t *testing.T, multiplayer bool, reward int) *domain.Quest {
	t.Helper()
	loc := &domain.Location{ID: uuid.New(), Name: "Библиотека", X: 300, Y: 400}
	if err := e.questRepo.CreateLocation(context.Background(), loc); err != nil {
		t.Fatalf("failed to create location: %v", err)
	}
	q := &domain.Quest{
		ID:            uuid.New(),
		Title:         "Квест",
		LocationID:    loc.ID,
		IsMultiplayer: multiplayer,
		RewardPoints:  reward,
	}
	if err := e.questRepo.Create(context.Background(), q); err != nil {
		t.Fatalf("failed to create quest: %v", err)
	}
	return q
}

func (e *testEnv) photo(t *testing.T, x, y float64, category, difficulty string) *domain.GeoPhoto {
	t.Helper()
	p := &domain.GeoPhoto{
		ID:         uuid.New(),
		ImageURL:   "https://cdn.test/photo.jpg",
		X:          x,
		Y:          y,
		Category:   category,
		Difficulty: difficulty,
		Verified:   true,
	}
	if err := e.geoRepo.CreatePhoto(context.Background(), p); err != nil {
		t.Fatalf("failed to create photo: %v", err)
	}
	return p
}

func (e *testEnv) points(t *testing.T, userID uuid.UUID) int {
	t.Helper()
	u, err := e.userRepo.GetByID(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return u.Points
}
